package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the process-wide logger. Init replaces it; before Init it is a nop so
// tests can use packages that log without any setup.
var L = zap.NewNop()

// Init configures the global logger at the given level.
func Init(logLevel string) error {
	var level zapcore.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.Fields(zap.String("service", "fridgechef")))
	if err != nil {
		return err
	}

	L = l
	zap.ReplaceGlobals(l)
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L.Sync()
}
