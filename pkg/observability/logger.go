// Package observability constructs the process logger.
package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sarychdb/infrastructure/config"
)

// NewLogger builds a zap.Logger appropriate for cfg.Environment:
// JSON production config when cfg.Environment is "production",
// human-readable development config otherwise, with the level taken
// from cfg.LogLevel.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
