package logger

import "context"

// Logger defines the logging interface used across the pipeline
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// With returns a child logger carrying an extra structured field
	With(key string, value interface{}) Logger
}
