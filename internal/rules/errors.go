package rules

import "fmt"

// ValidationError reports a host pattern or IP prefix that cannot be
// turned into a rule target. Per-record: the batch continues and the
// offending input lands in the skipped report.
type ValidationError struct {
	Target string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid target %q: %s", e.Target, e.Reason)
}

// FormatError reports a target containing characters the rule-file
// grammar cannot represent. Like ValidationError it is per-record and
// never aborts the batch.
type FormatError struct {
	Target string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("target %q not representable: %s", e.Target, e.Reason)
}
