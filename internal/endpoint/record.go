// Package endpoint defines the provider feed data model and the
// classification of host patterns into emittable rule targets.
package endpoint

import (
	"fmt"
	"strings"
)

// Protocol is a transport protocol named by the provider feed.
type Protocol string

const (
	TCP Protocol = "tcp"
	UDP Protocol = "udp"
)

// Record is one entry from a provider endpoint feed. A record carries a
// host pattern, a set of IP prefixes, or both, plus the ports and
// protocols the provider associates with them. Empty Ports means any
// port; empty Protocols means both TCP and UDP.
type Record struct {
	HostPattern string
	IPPrefixes  []string
	Ports       []int
	Protocols   []Protocol

	// Feed metadata, carried through into rule annotations.
	ServiceID   int
	ServiceArea string
	Category    string
	Required    bool
	Notes       string
}

// Valid reports whether the record names at least one target.
func (r Record) Valid() error {
	if r.HostPattern == "" && len(r.IPPrefixes) == 0 {
		return fmt.Errorf("record %d has neither a host pattern nor IP prefixes", r.ServiceID)
	}
	return nil
}

// String returns a short human-readable identification of the record,
// used in skipped-entry reports.
func (r Record) String() string {
	switch {
	case r.HostPattern != "" && len(r.IPPrefixes) > 0:
		return fmt.Sprintf("%s (+%d prefixes)", r.HostPattern, len(r.IPPrefixes))
	case r.HostPattern != "":
		return r.HostPattern
	default:
		return strings.Join(r.IPPrefixes, ",")
	}
}
