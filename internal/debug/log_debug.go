//go:build debug

// Package debug provides logging functionality for development and
// troubleshooting. This file contains debug build versions, backed by
// go.uber.org/zap instead of gomjml's raw fmt.Fprintf-to-stderr original.
package debug

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

func sugar() *zap.SugaredLogger {
	once.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
	})
	return logger
}

// Enabled reports whether debug logging is enabled. When built with the
// "debug" tag, this returns true so callers can guard expensive debug data
// construction.
func Enabled() bool { return true }

// DebugLog logs a debug message with component, phase, and formatted message.
func DebugLog(component, phase, message string, args ...interface{}) {
	sugar().Debugw(formatMessage(message, args...), "component", component, "phase", phase)
}

// DebugLogWithData logs a debug message with structured key/value data.
func DebugLogWithData(component, phase, message string, data map[string]interface{}) {
	fields := make([]interface{}, 0, len(data)*2+4)
	fields = append(fields, "component", component, "phase", phase)
	for k, v := range data {
		fields = append(fields, k, v)
	}
	sugar().Debugw(message, fields...)
}

// DebugLogTiming logs timing information for performance analysis.
func DebugLogTiming(component, phase, message string, durationMs int64) {
	sugar().Debugw(message, "component", component, "phase", phase, "duration_ms", durationMs)
}

// DebugLogError logs error conditions during pipeline processing.
func DebugLogError(component, phase, message string, err error) {
	sugar().Errorw(message, "component", component, "phase", phase, "error", err)
}

func formatMessage(message string, args ...interface{}) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}

// Sync flushes the underlying zap logger; call before process exit.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
