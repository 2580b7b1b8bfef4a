// Package logger constructs the zap loggers used by the CLI and API client.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a stderr logger. With verbose=false only warnings and above
// are emitted so scriptable command output on stdout stays clean.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// Nop returns a no-op logger for surfaces that own the terminal (the TUI
// must not interleave log lines with its own rendering).
func Nop() *zap.Logger { return zap.NewNop() }
