package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevels(t *testing.T) {
	t.Run("debug enabled", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{Debug: true, Output: &buf})
		Debug("debug message", "key", "value")
		if !strings.Contains(buf.String(), "debug message") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})

	t.Run("debug suppressed by default", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{Output: &buf})
		Debug("hidden")
		if strings.Contains(buf.String(), "hidden") {
			t.Errorf("debug should be suppressed, got %q", buf.String())
		}
	})

	t.Run("quiet shows only errors", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{Quiet: true, Output: &buf})
		Info("info message")
		Error("error message")
		out := buf.String()
		if strings.Contains(out, "info message") {
			t.Errorf("info should be suppressed in quiet mode, got %q", out)
		}
		if !strings.Contains(out, "error message") {
			t.Errorf("errors should pass in quiet mode, got %q", out)
		}
	})

	t.Run("json handler", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{JSON: true, Output: &buf})
		Info("structured", "k", "v")
		out := buf.String()
		if !strings.Contains(out, `"msg":"structured"`) {
			t.Errorf("expected JSON output, got %q", out)
		}
	})
}
