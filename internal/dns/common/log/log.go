// Package log wraps zap behind a small structured logging interface.
// Loggers are constructed once in main and injected into components;
// there is deliberately no package-global logger state.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging interface used across dnsrelay. Fields
// travel as a plain map so callers stay decoupled from the zap types.
type Logger interface {
	Debug(fields map[string]any, msg string)
	Info(fields map[string]any, msg string)
	Warn(fields map[string]any, msg string)
	Error(fields map[string]any, msg string)
	Fatal(fields map[string]any, msg string)
}

// New returns a zap-backed Logger for the given environment and level.
// Any env other than "prod" selects the development config.
func New(env, level string) (Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if env != "prod" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &zapLogger{base: base}, nil
}

// zapLogger adapts a zap.Logger to the Logger interface.
type zapLogger struct {
	base *zap.Logger
}

// emit performs the level check once, then converts the field map only for
// entries that will actually be written. Fatal entries terminate the
// process through zap's usual fatal hook.
func (l *zapLogger) emit(level zapcore.Level, fields map[string]any, msg string) {
	ce := l.base.Check(level, msg)
	if ce == nil {
		return
	}
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	ce.Write(zf...)
}

func (l *zapLogger) Debug(fields map[string]any, msg string) { l.emit(zapcore.DebugLevel, fields, msg) }
func (l *zapLogger) Info(fields map[string]any, msg string)  { l.emit(zapcore.InfoLevel, fields, msg) }
func (l *zapLogger) Warn(fields map[string]any, msg string)  { l.emit(zapcore.WarnLevel, fields, msg) }
func (l *zapLogger) Error(fields map[string]any, msg string) { l.emit(zapcore.ErrorLevel, fields, msg) }
func (l *zapLogger) Fatal(fields map[string]any, msg string) { l.emit(zapcore.FatalLevel, fields, msg) }

// noopLogger discards everything, including Fatal.
type noopLogger struct{}

func (noopLogger) Debug(map[string]any, string) {}
func (noopLogger) Info(map[string]any, string)  {}
func (noopLogger) Warn(map[string]any, string)  {}
func (noopLogger) Error(map[string]any, string) {}
func (noopLogger) Fatal(map[string]any, string) {}

// NewNoopLogger returns a Logger that drops every message. Used in tests
// and wherever a component requires a Logger but output is unwanted.
func NewNoopLogger() Logger {
	return noopLogger{}
}
