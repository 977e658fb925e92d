package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, line)
	}
	return entry
}

func TestLogger_BaseFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "info")

	logger.Info(context.Background(), "server listening", Field{Key: "port", Value: 3000})

	entry := decodeLine(t, buf.String())
	if entry["msg"] != "server listening" {
		t.Errorf("msg = %v, want 'server listening'", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want 'info'", entry["level"])
	}
	if entry["timestamp"] == nil {
		t.Error("timestamp should be present")
	}
	if v, ok := entry["port"].(float64); !ok || v != 3000 {
		t.Errorf("port = %v, want 3000", entry["port"])
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "info").With(Field{Key: "service", Value: "devsecops-app"})

	logger.Warn(context.Background(), "request completed")

	entry := decodeLine(t, buf.String())
	if entry["service"] != "devsecops-app" {
		t.Errorf("service = %v, want 'devsecops-app'", entry["service"])
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want 'warn'", entry["level"])
	}
}

func TestLogger_RequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "info")

	logger.Info(WithRequestID(context.Background(), "abc-123"), "handled")

	entry := decodeLine(t, buf.String())
	if entry["request_id"] != "abc-123" {
		t.Errorf("request_id = %v, want 'abc-123'", entry["request_id"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "warn")
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %s", buf.String())
	}

	logger.Error(ctx, "error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message should pass through when level is warn")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if err != nil {
				t.Fatalf("parseLevel(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := parseLevel("verbose"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("parseLevel(\"verbose\") error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestLogger_UnknownLevelLogsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "verbose")
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be dropped, got %s", buf.String())
	}
	logger.Info(ctx, "info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Error("info message should pass through for an unknown level")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info(context.Background(), "ignored")
	if logger.With(Field{Key: "k", Value: "v"}) == nil {
		t.Fatal("With should return non-nil logger")
	}
}
