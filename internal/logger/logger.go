// Package logger builds the zap logger used across the service.  A single
// logger is constructed in main and handed to the components that emit
// structured logs (gateway client, notification dispatcher, queue consumer).
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a configured *zap.Logger.  Production mode emits JSON at info
// level; any other environment uses the colored development encoder at debug
// level.  Errors building the logger fall back to a no-op logger so callers
// never receive nil.
func New(env string) *zap.Logger {
	var cfg zap.Config
	if env == "prod" || env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
