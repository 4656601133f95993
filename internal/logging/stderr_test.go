package logging

import (
	"bytes"
	"strings"
	"testing"
)

func testLogger(quiet, verbose bool) (*StderrLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &StderrLogger{out: &buf, quiet: quiet, verbose: verbose}, &buf
}

func TestInfo(t *testing.T) {
	l, buf := testLogger(false, false)
	l.Info("wrote %d rules", 42)
	if got := buf.String(); got != "[cloudrules] wrote 42 rules\n" {
		t.Errorf("Info output = %q", got)
	}
}

func TestInfoQuiet(t *testing.T) {
	l, buf := testLogger(true, false)
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet mode produced output: %q", buf.String())
	}
}

func TestWarnIgnoresQuiet(t *testing.T) {
	l, buf := testLogger(true, false)
	l.Warn("Skipping %s: %s", "office.*", "wildcard is not the leading label")
	if !strings.Contains(buf.String(), "Warning: Skipping office.*") {
		t.Errorf("Warn output = %q", buf.String())
	}
}

func TestDebugOnlyWhenVerbose(t *testing.T) {
	l, buf := testLogger(false, false)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("non-verbose Debug produced output: %q", buf.String())
	}

	l, buf = testLogger(false, true)
	l.Debug("shown")
	if !strings.Contains(buf.String(), "DEBUG: shown") {
		t.Errorf("verbose Debug output = %q", buf.String())
	}
}

func TestRunSummary(t *testing.T) {
	l, buf := testLogger(false, false)
	l.RunSummary(Summary{Records: 10, Rules: 8, Duplicates: 3, Skipped: 2})
	want := "[cloudrules] 10 records in, 8 rules out (3 duplicates suppressed, 2 skipped)\n"
	if buf.String() != want {
		t.Errorf("RunSummary output = %q, want %q", buf.String(), want)
	}
}
