package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("json", "debug", &buf)
	logger.Debug("queued scan", "target", "site1")

	out := buf.String()
	if !strings.Contains(out, `"msg":"queued scan"`) || !strings.Contains(out, `"target":"site1"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestNew_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("text", "warn", &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
