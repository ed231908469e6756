// Package logging builds the leveled console logger used across tempo.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr with the given level and format.
func New(level, format string, timestamps bool) *log.Logger {
	return NewWithWriter(os.Stderr, level, format, timestamps)
}

// NewWithWriter returns a logger writing to w. Useful for tests.
func NewWithWriter(w io.Writer, level, format string, timestamps bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: timestamps,
		Prefix:          "tempo",
	})
}

// ParseLevel maps a level name to a charmbracelet/log Level.
// Unknown names fall back to info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a format name to a charmbracelet/log Formatter.
// Unknown names fall back to text.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
