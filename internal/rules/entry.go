// Package rules turns classified endpoint records into an ordered,
// deduplicated sequence of firewall rule entries and serializes them
// into the supported output formats.
package rules

import (
	"fmt"
	"strconv"
)

// TargetKind is the kind of destination a rule entry matches.
type TargetKind int

const (
	// TargetHost matches one literal hostname.
	TargetHost TargetKind = iota
	// TargetDomain matches a domain and all its subdomains ("*.domain").
	TargetDomain
	// TargetNet matches a CIDR prefix.
	TargetNet
)

// Action is the verdict a rule applies to matching traffic.
type Action string

const (
	ActionAllow Action = "allow"
	ActionDeny  Action = "deny"
)

// PortAny marks an entry that matches every port.
const PortAny = 0

// ProtoAny marks an entry that matches both TCP and UDP.
const ProtoAny = "any"

// Entry is one emitted rule. Every entry maps to exactly one
// traffic-matching predicate: a single target, a single protocol
// (or any), a single port (or any).
type Entry struct {
	Kind     TargetKind
	Target   string // hostname, "*.domain", or CIDR prefix
	Protocol string // "tcp", "udp", or ProtoAny
	Port     int    // 1-65535, or PortAny
	Action   Action
	Notes    string // feed metadata, carried into formats that support it
}

// key is the deduplication key. Action and notes are uniform across a
// run and deliberately excluded.
func (e Entry) key() string {
	return e.Target + "|" + e.Protocol + "|" + strconv.Itoa(e.Port)
}

func (k TargetKind) String() string {
	switch k {
	case TargetHost:
		return "host"
	case TargetDomain:
		return "domain"
	case TargetNet:
		return "net"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}
