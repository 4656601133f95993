package endpoint

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePortList parses a comma-separated port list as published in the
// feed, e.g. "80,443". Returns an error if any entry is not a valid
// port (1-65535).
func ParsePortList(portStr string) ([]int, error) {
	if portStr == "" {
		return nil, nil
	}

	parts := strings.Split(portStr, ",")
	ports := make([]int, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", p, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("port %d out of range (1-65535)", port)
		}

		ports = append(ports, port)
	}

	return ports, nil
}
