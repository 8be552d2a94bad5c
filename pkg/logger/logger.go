package logger

import (
	charm "github.com/charmbracelet/log"
)

// Debug logs at debug level using the global default logger.
func Debug(msg interface{}, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Info logs at info level using the global default logger.
func Info(msg interface{}, keyvals ...interface{}) {
	Default().Info(msg, keyvals...)
}

// Warn logs at warn level using the global default logger.
func Warn(msg interface{}, keyvals ...interface{}) {
	Default().Warn(msg, keyvals...)
}

// Error logs at error level using the global default logger.
func Error(msg interface{}, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}

// SetLevel sets the level on the global default logger.
func SetLevel(level charm.Level) {
	Default().SetLevel(level)
}

// ParseLevel parses a textual log level ("debug", "info", "warn", "error").
func ParseLevel(level string) (charm.Level, error) {
	return charm.ParseLevel(level)
}
