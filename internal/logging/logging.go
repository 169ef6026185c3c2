package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. development switches to the console encoder.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	conf := zap.NewProductionConfig()
	if development {
		conf = zap.NewDevelopmentConfig()
	}
	conf.Level = zap.NewAtomicLevelAt(lvl)
	conf.DisableStacktrace = true
	return conf.Build()
}

// Named returns a child logger for one process, e.g. "api" or "migrate".
func Named(level string, development bool, name string) *zap.Logger {
	logger, err := New(level, development)
	if err != nil {
		return zap.NewExample().Named(name)
	}
	return logger.Named(name)
}
