package rules

import (
	"strconv"
	"strings"
)

// EmitText renders entries in the plain-text rule grammar, one
// directive per line, newline-terminated:
//
//	<action> <host|domain|net> <target> <tcp|udp|any> <port|any>
//
// Emission is pure serialization. Targets outside the grammar's
// character class fail with a *FormatError instead of producing an
// invalid line; Normalize pre-checks targets, so this only triggers on
// hand-built entries.
func EmitText(entries []Entry) (string, error) {
	var b strings.Builder
	for _, e := range entries {
		if err := CheckTarget(e.Target); err != nil {
			return "", err
		}
		b.WriteString(string(e.Action))
		b.WriteByte(' ')
		b.WriteString(e.Kind.String())
		b.WriteByte(' ')
		b.WriteString(e.Target)
		b.WriteByte(' ')
		b.WriteString(e.Protocol)
		b.WriteByte(' ')
		if e.Port == PortAny {
			b.WriteString("any")
		} else {
			b.WriteString(strconv.Itoa(e.Port))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// CheckTarget verifies a target against the rule grammar's character
// class: lowercase hostnames, wildcard anchors, and CIDR notation only.
func CheckTarget(target string) error {
	if target == "" {
		return &FormatError{Target: target, Reason: "empty target"}
	}
	for _, c := range target {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_' || c == '*' || c == '/' || c == ':':
		default:
			return &FormatError{Target: target, Reason: "character " + strconv.QuoteRune(c) + " outside the rule grammar"}
		}
	}
	return nil
}
