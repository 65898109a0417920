package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		if _, err := New(lvl, &bytes.Buffer{}); err != nil {
			t.Fatalf("level %q: %v", lvl, err)
		}
	}
	if _, err := New("verbose", &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "unknown log level") {
		t.Fatalf("expected unknown level error, got %v", err)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("error", &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden", "k", 1)
	if buf.Len() != 0 {
		t.Fatalf("info leaked at error level: %q", buf.String())
	}
	log.Error(errors.New("boom"), "evaluation failed", "wavelength", 532.0)
	out := buf.String()
	if !strings.Contains(out, "evaluation failed") || !strings.Contains(out, "boom") || !strings.Contains(out, "532") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNew_DebugEnablesVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("debug", &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.V(1).Info("sweep started", "samples", 500)
	if !strings.Contains(buf.String(), "sweep started") {
		t.Fatalf("debug line missing: %q", buf.String())
	}

	buf.Reset()
	log, _ = New("info", &buf)
	log.V(1).Info("sweep started")
	if buf.Len() != 0 {
		t.Fatalf("V(1) visible at info: %q", buf.String())
	}
}
