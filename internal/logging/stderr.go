// Package logging provides output formatting for cloudrules.
package logging

import (
	"fmt"
	"io"
	"os"
)

// StderrLogger provides formatted output to stderr.
type StderrLogger struct {
	out     io.Writer
	quiet   bool
	verbose bool
}

// NewStderrLogger creates a new StderrLogger.
func NewStderrLogger(quiet, verbose bool) *StderrLogger {
	return &StderrLogger{
		out:     os.Stderr,
		quiet:   quiet,
		verbose: verbose,
	}
}

// Info logs an informational message.
func (l *StderrLogger) Info(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[cloudrules] %s\n", msg)
}

// Warn logs a warning message. Warnings are printed even in quiet mode:
// a skipped feed entry must reach the operator.
func (l *StderrLogger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[cloudrules] Warning: %s\n", msg)
}

// Debug logs a debug message (only if verbose is enabled).
func (l *StderrLogger) Debug(format string, args ...interface{}) {
	if l.quiet || !l.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[cloudrules] DEBUG: %s\n", msg)
}

// Error logs an error message.
func (l *StderrLogger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[cloudrules] Error: %s\n", msg)
}

// Summary holds counts for a completed generation run.
type Summary struct {
	Records    int // feed records consumed
	Rules      int // rule entries emitted
	Duplicates int // entries suppressed by deduplication
	Skipped    int // feed inputs excluded with a reason
}

// RunSummary prints the end-of-run statistics.
func (l *StderrLogger) RunSummary(s Summary) {
	if l.quiet {
		return
	}
	l.Info("%d records in, %d rules out (%d duplicates suppressed, %d skipped)",
		s.Records, s.Rules, s.Duplicates, s.Skipped)
}
