// ABOUTME: Global structured logger for trainlog.
// ABOUTME: Writes to stderr; debug flag raises the level and reports callers.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance. Nil until Init; the wrappers
// below are safe to call either way.
var Logger *log.Logger

// Init configures the global logger. Warn level by default so normal CLI
// output stays clean; debug mode surfaces store migration and prune events.
func Init(debug bool) {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "trainlog",
	})
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
