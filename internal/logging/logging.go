// Package logging sets up the process-wide structured logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup builds the CLI logger: console encoding on stderr so log output
// never mixes with JSON written to stdout. With verbose set, the level drops
// to Debug. The returned close function flushes buffered entries.
func Setup(verbose bool) (*zap.Logger, func()) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), func() {}
	}
	return logger, func() {
		_ = logger.Sync()
	}
}
