package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger создаёт development-логгер zap с уровнем из LOG_LEVEL.
func (cfg *Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
