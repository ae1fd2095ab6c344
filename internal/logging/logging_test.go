package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewInfoLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("hidden")
	logger.Info("shown", "env", "base")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "env=base") {
		t.Errorf("output = %q, want info record with key/value", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("output = %q, want prefix %q", out, Prefix)
	}
}

func TestNewDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("output = %q, want debug record", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must accept all levels.
	logger := Discard()
	logger.Debug("x")
	logger.Warn("y", "err", "z")
	logger.Error("w")
}
