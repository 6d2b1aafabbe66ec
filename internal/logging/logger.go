package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production (JSON) zap logger at the given level.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Bootstrap is the logger used before configuration is loaded, so startup
// failures are still structured JSON. It logs at info level.
func Bootstrap() (*zap.Logger, error) {
	return New(zapcore.InfoLevel.String())
}
