//go:build cgo

package main

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logEnv names the environment variable holding the log level.
const logEnv = "RURE_LOG"

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the library logger. It is a no-op unless RURE_LOG holds a
// zap level name when the first message is logged.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = newLogger(os.Getenv(logEnv))
		}
	})
	return logger
}

func newLogger(level string) *zap.Logger {
	if level == "" {
		return zap.NewNop()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("librure")
}
