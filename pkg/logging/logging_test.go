package logging

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestInitForCLI_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)
	t.Cleanup(func() { InitForCLI(LevelInfo, os.Stderr) })

	Info("Test", "hidden %d", 1)
	Warn("Test", "shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("expected warn message, got %q", out)
	}
	if !strings.Contains(out, "subsystem=Test") {
		t.Errorf("expected subsystem attribute, got %q", out)
	}
}

func TestError_IncludesError(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)
	t.Cleanup(func() { InitForCLI(LevelInfo, os.Stderr) })

	Error("Output", errors.New("disk full"), "write failed")

	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("expected error text in output, got %q", buf.String())
	}
	if !Enabled(LevelDebug) {
		t.Error("debug should be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
