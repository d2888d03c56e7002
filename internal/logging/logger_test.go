package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates log file and parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "arena.log")

		logger, err := NewLogger(path, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		logger.Info("hello")
		if err := logger.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		if !strings.Contains(string(data), `"msg":"hello"`) {
			t.Errorf("log file missing entry, got %s", data)
		}
	})

	t.Run("writes to stderr when path is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.file != nil {
			t.Error("expected file to be nil when path is empty")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close on stderr logger should be a no-op, got %v", err)
		}
	})
}

func TestLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelDebug).WithRun("run-1").WithStage("opening").With("speaker", "Affirmative")

	logger.Debug("turn complete", "chars", 42)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log line: %v (%s)", err, buf.String())
	}

	want := map[string]any{
		"msg":     "turn complete",
		"run_id":  "run-1",
		"stage":   "opening",
		"speaker": "Affirmative",
		"chars":   float64(42),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("entry[%q] = %v, want %v", k, entry[k], v)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		warning bool
	}{
		{LevelDebug, true, true},
		{LevelInfo, false, true},
		{"warn", false, true},
		{LevelError, false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.level)

			logger.Debug("debug line")
			if got := strings.Contains(buf.String(), "debug line"); got != tt.debug {
				t.Errorf("debug written = %v, want %v", got, tt.debug)
			}

			logger.Warn("warn line")
			if got := strings.Contains(buf.String(), "warn line"); got != tt.warning {
				t.Errorf("warn written = %v, want %v", got, tt.warning)
			}
		})
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Error("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
