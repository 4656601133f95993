package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/endpoint"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name      string
		ports     []int
		protocols []endpoint.Protocol
		split     bool
		want      []PortProto
	}{
		{
			name: "nothing specified",
			want: []PortProto{{Protocol: "any", Port: 0}},
		},
		{
			name:      "protocols only",
			protocols: []endpoint.Protocol{endpoint.TCP, endpoint.UDP},
			want:      []PortProto{{Protocol: "tcp", Port: 0}, {Protocol: "udp", Port: 0}},
		},
		{
			name:  "ports only merged",
			ports: []int{80, 443},
			want:  []PortProto{{Protocol: "any", Port: 80}, {Protocol: "any", Port: 443}},
		},
		{
			name:  "ports only split",
			ports: []int{443},
			split: true,
			want:  []PortProto{{Protocol: "tcp", Port: 443}, {Protocol: "udp", Port: 443}},
		},
		{
			name:      "cartesian product",
			ports:     []int{443},
			protocols: []endpoint.Protocol{endpoint.TCP, endpoint.UDP},
			want:      []PortProto{{Protocol: "tcp", Port: 443}, {Protocol: "udp", Port: 443}},
		},
		{
			name:      "cartesian product multiple ports",
			ports:     []int{80, 443},
			protocols: []endpoint.Protocol{endpoint.TCP},
			want:      []PortProto{{Protocol: "tcp", Port: 80}, {Protocol: "tcp", Port: 443}},
		},
		{
			name:  "duplicate ports collapse",
			ports: []int{443, 443, 80},
			want:  []PortProto{{Protocol: "any", Port: 443}, {Protocol: "any", Port: 80}},
		},
		{
			name:      "duplicate protocols collapse",
			protocols: []endpoint.Protocol{endpoint.TCP, endpoint.TCP},
			want:      []PortProto{{Protocol: "tcp", Port: 0}},
		},
		{
			name:      "split flag irrelevant when protocols given",
			ports:     []int{53},
			protocols: []endpoint.Protocol{endpoint.UDP},
			split:     true,
			want:      []PortProto{{Protocol: "udp", Port: 53}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.ports, tt.protocols, tt.split)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
