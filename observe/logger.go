package observe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// logLevels maps configured level names to slog levels. Empty means info.
var logLevels = map[string]slog.Level{
	"":      slog.LevelInfo,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func parseLevel(name string) (slog.Level, error) {
	level, ok := logLevels[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
	return level, nil
}

// NewLogger returns a JSON logger writing to stderr.
func NewLogger(level string) Logger {
	return NewJSONLogger(os.Stderr, level)
}

// NewJSONLogger returns a logger writing one JSON object per entry to w,
// with "timestamp", "level" and "msg" keys followed by the entry's fields.
// Entries below level are dropped. An unknown level logs at info.
func NewJSONLogger(w io.Writer, level string) Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: renameBuiltin,
	})
	return &slogLogger{log: slog.New(h)}
}

func renameBuiltin(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.LevelKey:
		a.Value = slog.StringValue(strings.ToLower(a.Value.String()))
	}
	return a
}

// slogLogger adapts slog to Logger and stamps the request id carried by ctx.
type slogLogger struct {
	log *slog.Logger
}

func (l *slogLogger) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return &slogLogger{log: l.log.With(args...)}
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, slog.LevelError, msg, fields)
}

func (l *slogLogger) emit(ctx context.Context, level slog.Level, msg string, fields []Field) {
	attrs := make([]slog.Attr, 0, len(fields)+1)
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	l.log.LogAttrs(ctx, level, msg, attrs...)
}

var _ Logger = (*slogLogger)(nil)
