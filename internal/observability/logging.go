// Package observability carries per-operation logging context (operation id, site, stage)
// through context.Context and emits slog records enriched with it.
package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogContext holds structured logging context information.
type LogContext struct {
	OpID      string
	Operation string
	Site      string
	Stage     string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// NewOpID returns a fresh operation identifier for a generate or build call.
func NewOpID() string {
	return uuid.NewString()
}

// WithOperation starts an operation scope: it records the operation name and site, and assigns
// a new operation id unless one is already present.
func WithOperation(ctx context.Context, operation, site string) context.Context {
	lc := extractLogContext(ctx)
	if lc.OpID == "" {
		lc.OpID = NewOpID()
	}
	lc.Operation = operation
	lc.Site = site
	lc.Stage = ""
	return context.WithValue(ctx, logContextKey, lc)
}

// WithOpID sets the operation id explicitly.
func WithOpID(ctx context.Context, id string) context.Context {
	lc := extractLogContext(ctx)
	lc.OpID = id
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if ctx == nil {
		return LogContext{}
	}
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func getLogAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := make([]slog.Attr, 0, 4)
	if lc.OpID != "" {
		attrs = append(attrs, slog.String("op.id", lc.OpID))
	}
	if lc.Operation != "" {
		attrs = append(attrs, slog.String("op.name", lc.Operation))
	}
	if lc.Site != "" {
		attrs = append(attrs, slog.String("site", lc.Site))
	}
	if lc.Stage != "" {
		attrs = append(attrs, slog.String("stage", lc.Stage))
	}
	return attrs
}

func logContext(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	all := append(getLogAttrs(ctx), attrs...)
	slog.Default().LogAttrs(ctx, level, msg, all...)
}

// InfoContext logs an info message with context information.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logContext(ctx, slog.LevelInfo, msg, attrs)
}

// WarnContext logs a warning message with context information.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logContext(ctx, slog.LevelWarn, msg, attrs)
}

// ErrorContext logs an error message with context information.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logContext(ctx, slog.LevelError, msg, attrs)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logContext(ctx, slog.LevelDebug, msg, attrs)
}
