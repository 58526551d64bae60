package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type implLogger struct {
	logger zerolog.Logger
}

// New creates a new Logger instance writing to stdout.
// format is "json" or "text"; unknown levels fall back to info.
func New(level, format string) Logger {
	return newWithWriter(os.Stdout, level, format)
}

func newWithWriter(w io.Writer, level, format string) *implLogger {
	if strings.ToLower(format) == "text" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return &implLogger{
		logger: zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger(),
	}
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Debug().Msgf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Info().Msgf(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Warn().Msgf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Error().Msgf(msg, args...)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{logger: l.logger.With().Interface(key, value).Logger()}
}

// Nop returns a Logger that discards everything. Useful in tests.
func Nop() Logger {
	return &implLogger{logger: zerolog.Nop()}
}
