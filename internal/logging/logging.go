package logging

import (
	"fmt"
	"strings"

	"facility-registry/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production environments get JSON output,
// everything else the development console encoder.
func New(cfg config.AppConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if cfg.AppName != "" {
		logger = logger.With(zap.String("app", cfg.AppName))
	}
	return logger, nil
}

// ParseLevel maps LOG_LEVEL to a zap level. Empty means info in production and debug elsewhere.
func ParseLevel(raw string, production bool) (zapcore.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		if production {
			return zapcore.InfoLevel, nil
		}
		return zapcore.DebugLevel, nil
	}
	if raw == "warning" {
		raw = "warn"
	}
	lvl, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return lvl, nil
}
