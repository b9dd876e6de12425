// Package logging builds the zap logger shared by every surface.
// Output always goes to stderr: stdout carries CLI JSON and the MCP transport.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hpungsan/habits/internal/config"
)

// New creates a logger from cfg.LogLevel and cfg.LogFormat.
func New(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg != nil && strings.TrimSpace(cfg.LogLevel) != "" {
		parsed, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
		}
		level = parsed
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Development = false
	zcfg.DisableStacktrace = true
	if cfg != nil && cfg.LogFormat == "json" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}
