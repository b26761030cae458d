package app

import (
	"fmt"

	"github.com/piwi3910/WoodBOM/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger: a colored console logger in
// development, JSON otherwise. Level defaults to info.
func NewLogger(cfg model.LogConfig) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	if cfg.Format != "" {
		config.Encoding = cfg.Format
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}
	return config.Build()
}
