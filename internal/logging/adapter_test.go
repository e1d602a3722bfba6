package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewMCPAdapter_WithNil(t *testing.T) {
	adapter := NewMCPAdapter(nil)
	if adapter == nil {
		t.Fatal("NewMCPAdapter returned nil")
	}
	if adapter.logger == nil {
		t.Error("adapter.logger should not be nil when created with nil")
	}
}

func TestNewMCPAdapter_WithLogger(t *testing.T) {
	logger := slog.Default()
	adapter := NewMCPAdapter(logger)
	if adapter == nil {
		t.Fatal("NewMCPAdapter returned nil")
	}
	if adapter.logger != logger {
		t.Error("adapter.logger should be the provided logger")
	}
}

func TestMCPAdapter_Infof(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	adapter := NewMCPAdapter(logger)

	adapter.Infof("session %s started", "abc123")

	out := buf.String()
	if !strings.Contains(out, "session abc123 started") {
		t.Errorf("Infof output %q should contain formatted message", out)
	}
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("Infof output %q should be at info level", out)
	}
}

func TestMCPAdapter_Errorf(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	adapter := NewMCPAdapter(logger)

	adapter.Errorf("write failed: %v", "broken pipe")

	out := buf.String()
	if !strings.Contains(out, "write failed: broken pipe") {
		t.Errorf("Errorf output %q should contain formatted message", out)
	}
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("Errorf output %q should be at error level", out)
	}
}

func TestMCPAdapter_Logger(t *testing.T) {
	logger := slog.Default()
	adapter := NewMCPAdapter(logger)
	if adapter.Logger() != logger {
		t.Error("Logger() should return the underlying logger")
	}
}
