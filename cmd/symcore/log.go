package main

import (
	"go.uber.org/zap"

	"github.com/go-symcore/symcore/diagnostic"
)

// newLogger builds a zap sugared logger whose level is gated by the
// single "verbosity" option spec.md §6 names ("a global options handle
// from which it reads exactly one option"). The core packages
// themselves never log (§5's no-global-state design note). No
// subcommand calls newLogger, and package config does not log.
func newLogger(v diagnostic.Verbosity) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	switch v {
	case diagnostic.VerbosityQuiet:
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case diagnostic.VerbosityVerbose:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	logger, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig().Build() only fails on a malformed
		// sink URL, which this configuration never sets.
		panic(err)
	}
	return logger.Sugar()
}
