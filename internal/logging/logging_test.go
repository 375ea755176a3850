package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name   string
		format string
		check  func(string) bool
	}{
		{
			name:   "json",
			format: "json",
			check: func(out string) bool {
				var m map[string]any
				return json.Unmarshal([]byte(out), &m) == nil && m["msg"] == "hello"
			},
		},
		{
			name:   "text",
			format: "text",
			check: func(out string) bool {
				return strings.Contains(out, "msg=hello")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(&buf, tt.format, slog.LevelInfo))
			logger.Info("hello")
			logger.Debug("filtered")
			if !tt.check(strings.TrimSpace(buf.String())) {
				t.Errorf("unexpected output: %q", buf.String())
			}
		})
	}
}

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, closer := New(Options{Level: slog.LevelInfo, Format: "json", File: path, MaxSizeMB: 1})
	logger.Info("to file", "key", "value")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"key":"value"`) {
		t.Errorf("log file missing record: %s", data)
	}
}
