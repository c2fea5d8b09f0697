// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"
	"strings"

	"github.com/td0m/listopia/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006/01/02 15:04:05"

// New builds a logger writing to stderr, or to cfg.File when set
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.Sampling = nil
	}
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = !cfg.Development

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
		// colors only make sense on a terminal
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}

	return zc.Build()
}

// ForTerminalUI is New, except that with no log file configured nothing is
// logged, because stderr output would corrupt the full screen interface.
func ForTerminalUI(cfg config.Log) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return New(cfg)
}
