package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"xyzzy", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestInitLoggerJSONCarriesService(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{
		Level:   "info",
		Format:  "json",
		Service: "lending",
		Output:  &buf,
	})
	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}

	logger.Info("probe", "key", "value")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["service"] != "lending" {
		t.Errorf("service attribute = %v, want lending", record["service"])
	}
	if record["key"] != "value" {
		t.Errorf("key attribute = %v, want value", record["key"])
	}
}

func TestInitLoggerTextDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "warn", Output: &buf})
	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info record should be suppressed at warn level, got %q", buf.String())
	}

	logger.Warn("visible")
	if buf.Len() == 0 {
		t.Error("warn record should be emitted")
	}
}
