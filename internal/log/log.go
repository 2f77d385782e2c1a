// Package log provides the structured logger used across the privacyzk core.
//
// A narrow Logger interface backed by zap, dropping the chain-wide
// namespaces and KMS fields that have no referent in a crypto core.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the narrow logging contract every privacyzk package depends on.
//
// Leaf cryptographic packages (curve/pedersen/schnorr/merkletree) never
// take a Logger: they are pure functions, logging belongs to their callers
// (protoex, assets, cmd).
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Fatal(msg string)
	Fatalf(format string, args ...interface{})
	With(args ...interface{}) Logger
	Sync() error
}

type zapLogger struct {
	l *zap.SugaredLogger
}

// New builds a zap-backed Logger. level is one of
// "debug"/"info"/"warn"/"error" (case-insensitive); unknown values fall
// back to "info". outputPaths defaults to stderr when empty.
func New(level string, outputPaths ...string) (Logger, error) {
	var zlevel zapcore.Level
	if err := zlevel.UnmarshalText([]byte(level)); err != nil {
		zlevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zlevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(outputPaths) > 0 {
		cfg.OutputPaths = outputPaths
	} else {
		cfg.OutputPaths = []string{"stderr"}
	}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &zapLogger{l: base.Sugar()}, nil
}

// NewFromEnv builds a Logger using LOG_LEVEL (default "info").
func NewFromEnv() Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger, err := New(level)
	if err != nil {
		// fallback: never let logger construction itself be fatal
		logger, _ = New("info")
	}
	return logger
}

func (z *zapLogger) Debug(msg string)                          { z.l.Debug(msg) }
func (z *zapLogger) Debugf(format string, args ...interface{}) { z.l.Debugf(format, args...) }
func (z *zapLogger) Info(msg string)                           { z.l.Info(msg) }
func (z *zapLogger) Infof(format string, args ...interface{})  { z.l.Infof(format, args...) }
func (z *zapLogger) Warn(msg string)                           { z.l.Warn(msg) }
func (z *zapLogger) Warnf(format string, args ...interface{})  { z.l.Warnf(format, args...) }
func (z *zapLogger) Error(msg string)                          { z.l.Error(msg) }
func (z *zapLogger) Errorf(format string, args ...interface{}) { z.l.Errorf(format, args...) }
func (z *zapLogger) Fatal(msg string)                          { z.l.Fatal(msg) }
func (z *zapLogger) Fatalf(format string, args ...interface{}) { z.l.Fatalf(format, args...) }

func (z *zapLogger) With(args ...interface{}) Logger {
	return &zapLogger{l: z.l.With(args...)}
}

func (z *zapLogger) Sync() error {
	return z.l.Sync()
}

// Nop returns a Logger that discards everything, for tests and library
// callers that don't want output.
func Nop() Logger {
	return &zapLogger{l: zap.NewNop().Sugar()}
}
