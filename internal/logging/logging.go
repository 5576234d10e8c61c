// Package logging wraps zap for the hosting layer around the matching
// engine. The engine package itself does not import this package and
// never logs; only the cmd entrypoints that drive it do.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field holds one key-value pair to attach to a log entry.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Level is the minimum severity a Logger emits.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

func (level Level) zapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a structured, leveled logger.
type Logger struct {
	logger *zap.Logger
}

// New builds a Logger at the given level, writing JSON to stderr.
func New(level Level) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	cfg.EncoderConfig.MessageKey = "message"

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger: zl}, nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.logger.Sync() }

// Info writes a message at info level.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, convert(fields)...)
}

// Warn writes a message at warn level.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, convert(fields)...)
}

// Error writes err at error level.
func (l *Logger) Error(err error, fields ...Field) {
	l.logger.Error(err.Error(), convert(fields)...)
}

// With returns a child Logger that always attaches fields.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(convert(fields)...)}
}

func convert(fields []Field) []zapcore.Field {
	var out []zapcore.Field
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
