package logging

import (
	"context"
	"log/slog"
	"os"
)

// ContextKey is the type for context keys used by this package.
type ContextKey string

const (
	// RequestIDKey carries the request id assigned at the HTTP edge.
	RequestIDKey ContextKey = "request_id"
	// FamilyIDKey carries the authenticated family id.
	FamilyIDKey ContextKey = "family_id"
)

// Logger wraps slog.Logger with context-field extraction.
type Logger struct {
	*slog.Logger
}

// New creates a structured logger writing to stdout. Format "json"
// selects the JSON handler, anything else the text handler.
func New(level slog.Level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Default wraps the process-wide slog default logger.
func Default() *Logger {
	return &Logger{Logger: slog.Default()}
}

// WithContext returns a logger annotated with the request and family
// ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	logger := l.Logger

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.With("request_id", requestID)
	}

	if familyID, ok := ctx.Value(FamilyIDKey).(string); ok && familyID != "" {
		logger = logger.With("family_id", familyID)
	}

	return logger
}

// InfoCtx logs at info level with context fields attached.
func (l *Logger) InfoCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Info(msg, args...)
}

// ErrorCtx logs at error level with context fields attached.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Error(msg, args...)
}

// WarnCtx logs at warn level with context fields attached.
func (l *Logger) WarnCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Warn(msg, args...)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
