// Package logger provides the structured logging contract for the GDM risk service.
// The production implementation is backed by zap (see internal/infrastructure/monitoring).
package logger

import (
	"context"

	"github.com/turtacn/gdmrisk/pkg/constants"
)

// ================================================================================
// Logger Interface
// ================================================================================

// Fields is a set of structured key/value pairs attached to a log entry
type Fields map[string]interface{}

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields ...Fields)

	// Info logs an informational message
	Info(ctx context.Context, msg string, fields ...Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs a fatal message and exits the application
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields creates a new logger with additional fields
	WithFields(fields Fields) Logger

	// ForContext creates a logger carrying request-scoped fields from ctx
	ForContext(ctx context.Context) Logger
}

// ================================================================================
// Context Helpers
// ================================================================================

// NewContext returns a copy of ctx that carries l.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, constants.ContextKeyLogger, l)
}

// FromContext returns the logger stored in ctx, or fallback when there is none.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(constants.ContextKeyLogger).(Logger); ok {
			return l
		}
	}
	return fallback
}

// Merge flattens a variadic Fields list into one map. Later keys win.
func Merge(fields ...Fields) Fields {
	out := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}
