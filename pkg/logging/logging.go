package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields holds structured log context
type Fields map[string]any

// Logger is the structured logging interface used across the engine
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

// Options controls logger construction
type Options struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

var std Logger = newZapLogger(Options{Level: "info"})

// NewDefaultLogger creates a logger at info level writing to stderr
func NewDefaultLogger() Logger {
	return newZapLogger(Options{Level: "info"})
}

// NewLogger creates a logger from the given options
func NewLogger(opts Options) Logger {
	return newZapLogger(opts)
}

// Configure replaces the package-level logger used by WithFields and Error.
// Intended to be called once at startup, before any logging happens.
func Configure(opts Options) error {
	if _, err := zapcore.ParseLevel(normalizeLevel(opts.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	std = newZapLogger(opts)
	return nil
}

// WithFields returns a logger derived from the package-level logger
func WithFields(fields Fields) Logger {
	return std.WithFields(fields)
}

// Error logs through the package-level logger
func Error(err error, msg string, fields ...Fields) {
	std.Error(err, msg, fields...)
}

func newZapLogger(opts Options) *zapLogger {
	level, err := zapcore.ParseLevel(normalizeLevel(opts.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if opts.Development {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(devCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	return &zapLogger{sugar: zap.New(core).Sugar()}
}

func normalizeLevel(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

func (l *zapLogger) Debug(msg string, fields ...Fields) {
	l.sugar.Debugw(msg, flatten(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Fields) {
	l.sugar.Infow(msg, flatten(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Fields) {
	l.sugar.Warnw(msg, flatten(fields)...)
}

func (l *zapLogger) Error(err error, msg string, fields ...Fields) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	l.sugar.Errorw(msg, kv...)
}

func (l *zapLogger) WithFields(fields Fields) Logger {
	return &zapLogger{sugar: l.sugar.With(flatten([]Fields{fields})...)}
}

// flatten converts field maps to zap's alternating key/value form
func flatten(fields []Fields) []any {
	kv := make([]any, 0, 8)
	for _, f := range fields {
		for k, v := range f {
			kv = append(kv, k, v)
		}
	}
	return kv
}
