package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger emits one JSON object per message through zap.
// Used with --log-format json so CI systems can ingest the run log.
// Safe for concurrent use by multiple goroutines.
type StructuredLogger struct {
	sugar *zap.SugaredLogger
}

// NewStructuredLogger builds a zap production logger writing to stderr.
// Verbose messages are emitted at debug level and only when verbose is true.
func NewStructuredLogger(verbose bool) (*StructuredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build structured logger: %w", err)
	}
	return &StructuredLogger{sugar: logger.Sugar()}, nil
}

// NewStructuredLoggerFromZap wraps an existing zap logger.
func NewStructuredLoggerFromZap(logger *zap.Logger) *StructuredLogger {
	return &StructuredLogger{sugar: logger.Sugar()}
}

func (l *StructuredLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *StructuredLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *StructuredLogger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *StructuredLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *StructuredLogger) Sync() {
	_ = l.sugar.Sync()
}
