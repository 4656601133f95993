package rules

import (
	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/endpoint"
)

// PortProto is one (protocol, port) combination an entry is emitted for.
type PortProto struct {
	Protocol string // "tcp", "udp", or ProtoAny
	Port     int    // 1-65535, or PortAny
}

// Expand produces the minimal set of (protocol, port) pairs for a
// record's port and protocol sets:
//
//   - both empty: one (any, any) pair
//   - protocols only: one (proto, any) pair per protocol
//   - ports only: one (any, port) pair per port, unless
//     splitPortsByProtocol is set, in which case each port gets an
//     explicit TCP and UDP pair
//   - both: the cartesian product, each combination once
//
// Duplicate values inside the input sets collapse; pair order follows
// the input order so output stays stable run to run.
func Expand(ports []int, protocols []endpoint.Protocol, splitPortsByProtocol bool) []PortProto {
	protos := dedupProtocols(protocols)
	ports = dedupPorts(ports)

	if len(ports) == 0 {
		if len(protos) == 0 {
			return []PortProto{{Protocol: ProtoAny, Port: PortAny}}
		}
		pairs := make([]PortProto, 0, len(protos))
		for _, p := range protos {
			pairs = append(pairs, PortProto{Protocol: p, Port: PortAny})
		}
		return pairs
	}

	if len(protos) == 0 {
		if splitPortsByProtocol {
			pairs := make([]PortProto, 0, 2*len(ports))
			for _, port := range ports {
				pairs = append(pairs,
					PortProto{Protocol: string(endpoint.TCP), Port: port},
					PortProto{Protocol: string(endpoint.UDP), Port: port})
			}
			return pairs
		}
		pairs := make([]PortProto, 0, len(ports))
		for _, port := range ports {
			pairs = append(pairs, PortProto{Protocol: ProtoAny, Port: port})
		}
		return pairs
	}

	pairs := make([]PortProto, 0, len(protos)*len(ports))
	for _, p := range protos {
		for _, port := range ports {
			pairs = append(pairs, PortProto{Protocol: p, Port: port})
		}
	}
	return pairs
}

func dedupProtocols(protocols []endpoint.Protocol) []string {
	seen := make(map[string]struct{}, len(protocols))
	out := make([]string, 0, len(protocols))
	for _, p := range protocols {
		s := string(p)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func dedupPorts(ports []int) []int {
	seen := make(map[int]struct{}, len(ports))
	out := make([]int, 0, len(ports))
	for _, p := range ports {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
