package rules

import (
	"net/netip"

	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/endpoint"
)

// Options control how records are normalized into entries.
type Options struct {
	Action Action
	// SplitPortsByProtocol emits separate TCP and UDP entries for ports
	// whose record names no protocol, instead of a single "any" entry.
	SplitPortsByProtocol bool
}

// Skipped is one feed input the normalizer could not emit, with the
// reason. Surfaced to the operator, never to the output file.
type Skipped struct {
	Record endpoint.Record
	Target string // the host pattern or prefix that failed
	Reason string
}

// Report is what the normalizer tells the caller besides the entries:
// the skipped inputs and how many expanded entries deduplication
// absorbed. Duplicates are expected when records share endpoints and
// are counted, not reported per entry.
type Report struct {
	Skipped    []Skipped
	Duplicates int
}

// Normalize converts feed records into the ordered, deduplicated rule
// list. Per-record problems (unsupported wildcards, malformed prefixes,
// targets outside the output grammar) go to the skipped report and the
// batch continues. Entries keep first-seen order; later duplicates of
// the same (target, protocol, port) are dropped, since overlapping
// records are normal in provider feeds.
func Normalize(records []endpoint.Record, opts Options) ([]Entry, Report) {
	if opts.Action == "" {
		opts.Action = ActionAllow
	}

	var entries []Entry
	var report Report
	seen := make(map[string]struct{})

	add := func(e Entry) {
		k := e.key()
		if _, ok := seen[k]; ok {
			report.Duplicates++
			return
		}
		seen[k] = struct{}{}
		entries = append(entries, e)
	}

	skip := func(rec endpoint.Record, target string, err error) {
		report.Skipped = append(report.Skipped, Skipped{Record: rec, Target: target, Reason: err.Error()})
	}

	for _, rec := range records {
		if err := rec.Valid(); err != nil {
			skip(rec, rec.String(), err)
			continue
		}

		pairs := Expand(rec.Ports, rec.Protocols, opts.SplitPortsByProtocol)

		if rec.HostPattern != "" {
			kind, target, err := hostTarget(rec.HostPattern)
			if err != nil {
				skip(rec, rec.HostPattern, err)
			} else {
				for _, pp := range pairs {
					add(Entry{
						Kind:     kind,
						Target:   target,
						Protocol: pp.Protocol,
						Port:     pp.Port,
						Action:   opts.Action,
						Notes:    rec.Notes,
					})
				}
			}
		}

		for _, prefix := range rec.IPPrefixes {
			target, err := netTarget(prefix)
			if err != nil {
				skip(rec, prefix, err)
				continue
			}
			for _, pp := range pairs {
				add(Entry{
					Kind:     TargetNet,
					Target:   target,
					Protocol: pp.Protocol,
					Port:     pp.Port,
					Action:   opts.Action,
					Notes:    rec.Notes,
				})
			}
		}
	}

	return entries, report
}

// hostTarget classifies a host pattern and checks it against the output
// grammar, so emission later cannot fail on it.
func hostTarget(pattern string) (TargetKind, string, error) {
	c := endpoint.Classify(pattern)
	switch c.Kind {
	case endpoint.Literal:
		if err := CheckTarget(c.Normalized); err != nil {
			return 0, "", err
		}
		return TargetHost, c.Normalized, nil
	case endpoint.LeadingWildcard:
		if err := CheckTarget(c.Normalized); err != nil {
			return 0, "", err
		}
		return TargetDomain, c.Normalized, nil
	default:
		return 0, "", &ValidationError{Target: pattern, Reason: c.Reason}
	}
}

// netTarget validates a CIDR prefix and returns its canonical form, so
// equivalent spellings ("2603:1006::/40" vs "2603:1006:0::/40")
// deduplicate.
func netTarget(prefix string) (string, error) {
	p, err := netip.ParsePrefix(prefix)
	if err != nil {
		return "", &ValidationError{Target: prefix, Reason: "malformed CIDR"}
	}
	target := p.String()
	if err := CheckTarget(target); err != nil {
		return "", err
	}
	return target, nil
}
