// Package logger configures the diagnostic logger. Output goes to stderr
// and is disabled unless REW_LOG selects a level, so it never interferes
// with the delimiter-framed protocol on stdout.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rewtool/rew/internal/record"
)

// New builds the process logger from the REW_LOG environment variable.
// An empty or unknown value yields a no-op logger.
func New() *zap.Logger {
	value := os.Getenv(record.EnvLog)
	if value == "" {
		return zap.NewNop()
	}
	level, err := zapcore.ParseLevel(value)
	if err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
