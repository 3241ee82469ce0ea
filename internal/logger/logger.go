package logger

import (
	"sync"
)

// Log levels accepted by the log_level config key.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes the level; later calls
// return the same instance whatever level they pass.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}

// SetLevel changes the level of the process-wide logger, e.g. after a config reload.
// It is a no-op before Get has been called.
func SetLevel(level string) {
	if globalLogger == nil {
		return
	}
	globalLogger.level.SetLevel(toZapLevel(level))
}
