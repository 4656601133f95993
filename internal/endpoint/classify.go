package endpoint

import (
	"strings"

	"github.com/miekg/dns"
)

// Kind classifies a host pattern from the feed.
type Kind int

const (
	// Literal is an exact hostname, e.g. "outlook.office365.com".
	Literal Kind = iota
	// LeadingWildcard is a pattern whose only wildcard is the leftmost
	// label, e.g. "*.office.com".
	LeadingWildcard
	// Unsupported is any pattern the rule syntax cannot express. It is
	// reported to the operator, never silently dropped.
	Unsupported
)

// Classification is the result of classifying a single host pattern.
type Classification struct {
	Kind       Kind
	Normalized string // lowercased pattern; keeps the "*." anchor for wildcards
	Domain     string // wildcard suffix without the anchor (LeadingWildcard only)
	Reason     string // why the pattern is Unsupported
}

// Classify determines how a feed host pattern maps onto the rule syntax.
// Exactly one "*", at the start and followed by a dot, makes a leading
// wildcard. A pattern with no "*" must be a plausible hostname. Anything
// else — mid-string wildcards, multiple wildcards, trailing dots, empty
// labels — comes back Unsupported with a reason, so the caller can flag
// it for manual review instead of emitting a wrong rule.
func Classify(pattern string) Classification {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if p == "" {
		return unsupported(p, "empty host pattern")
	}

	switch strings.Count(p, "*") {
	case 0:
		if reason := checkHostname(p); reason != "" {
			return unsupported(p, reason)
		}
		return Classification{Kind: Literal, Normalized: p}

	case 1:
		if !strings.HasPrefix(p, "*.") {
			return unsupported(p, "wildcard is not the leading label")
		}
		suffix := p[2:]
		if suffix == "" {
			return unsupported(p, "wildcard has no domain")
		}
		if reason := checkHostname(suffix); reason != "" {
			return unsupported(p, reason)
		}
		return Classification{
			Kind:       LeadingWildcard,
			Normalized: "*." + suffix,
			Domain:     suffix,
		}

	default:
		return unsupported(p, "multiple wildcards")
	}
}

func unsupported(pattern, reason string) Classification {
	return Classification{Kind: Unsupported, Normalized: pattern, Reason: reason}
}

// checkHostname verifies that a (wildcard-free, lowercased) string is a
// plausible hostname. Returns an empty string when it is, otherwise the
// reason it is not. Trailing dots and empty labels are not auto-corrected;
// the feed is expected to publish clean names.
func checkHostname(host string) string {
	if len(host) > 253 {
		return "hostname too long"
	}
	if strings.HasSuffix(host, ".") {
		return "trailing dot"
	}
	if strings.Contains(host, "..") {
		return "empty label"
	}
	if strings.HasPrefix(host, ".") || strings.HasPrefix(host, "-") {
		return "hostname starts with " + host[0:1]
	}
	for _, c := range host {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '.' || c == '_') {
			return "invalid character " + string(c)
		}
	}
	if _, ok := dns.IsDomainName(host); !ok {
		return "not a valid domain name"
	}
	return ""
}
