// pkg/logger/logger.go

package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// L returns the process-wide logger, or nil if none has been installed.
func L() *zap.Logger {
	return log
}

// SetLogger installs the process-wide logger.
func SetLogger(l *zap.Logger) {
	log = l
}

// GetLogger returns the process-wide logger, installing a console
// fallback if nothing has been initialized yet.
func GetLogger() *zap.Logger {
	l := L()
	if l == nil {
		fallback := NewFallbackLogger()
		zap.ReplaceGlobals(fallback)
		SetLogger(fallback)
		return fallback
	}
	return l
}

// ParseLogLevel maps a LOG_LEVEL string onto a zap level, defaulting to Info.
func ParseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SafeSync flushes buffered log entries, swallowing the EINVAL that
// zap returns when stdout is not a syncable file.
func SafeSync() {
	if log != nil {
		_ = log.Sync()
	}
}
