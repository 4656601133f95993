package rules

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Subscription is the Little Snitch rule-group subscription document
// (.lsrules), the JSON format the firewall imports directly.
// https://help.obdev.at/littlesnitch4/lsc-rule-group-subscriptions
type Subscription struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Author      string   `json:"author,omitempty"`
	Rules       []LSRule `json:"rules"`
}

// LSRule is one rule inside a subscription. Exactly one of RemoteHosts,
// RemoteDomains, or RemoteAddresses is set.
type LSRule struct {
	Action          string   `json:"action"`
	Process         string   `json:"process"`
	RemoteHosts     []string `json:"remote-hosts,omitempty"`
	RemoteDomains   []string `json:"remote-domains,omitempty"`
	RemoteAddresses []string `json:"remote-addresses,omitempty"`
	Protocol        string   `json:"protocol,omitempty"`
	Ports           string   `json:"ports,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// EmitLSRules renders entries as a Little Snitch subscription. Wildcard
// targets lose their "*." anchor, since remote-domains already matches
// the domain and all subdomains. Protocol and port qualifiers appear
// only when the entry names a specific protocol or port; Little Snitch
// treats their absence as "any".
func EmitLSRules(entries []Entry, name, description string) ([]byte, error) {
	rules := make([]LSRule, 0, len(entries))

	for _, e := range entries {
		if err := CheckTarget(e.Target); err != nil {
			return nil, err
		}

		r := LSRule{
			Action:  string(e.Action),
			Process: "ANY",
			Notes:   e.Notes,
		}

		switch e.Kind {
		case TargetHost:
			r.RemoteHosts = []string{e.Target}
		case TargetDomain:
			r.RemoteDomains = []string{strings.TrimPrefix(e.Target, "*.")}
		case TargetNet:
			r.RemoteAddresses = []string{e.Target}
		default:
			return nil, fmt.Errorf("unknown target kind %d", e.Kind)
		}

		if e.Protocol != ProtoAny {
			r.Protocol = e.Protocol
		}
		if e.Port != PortAny {
			r.Ports = strconv.Itoa(e.Port)
		}

		rules = append(rules, r)
	}

	doc := Subscription{
		Name:        name,
		Description: description,
		Author:      "cloudrules",
		Rules:       rules,
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling subscription: %w", err)
	}
	return append(data, '\n'), nil
}
