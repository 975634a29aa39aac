// Package logging provides the shared diagnostic logger. It writes to
// stderr so resolution output on stdout stays machine-readable, and it
// stays at warn level unless debug tracing is enabled.
package logging

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
	Level:           charmlog.WarnLevel,
})

// EnableDebug lowers the level so classification and scan decisions are traced.
func EnableDebug() {
	logger.SetLevel(charmlog.DebugLevel)
}

// Debug logs a message with key/value pairs at debug level.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Warn logs a message with key/value pairs at warn level.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}
