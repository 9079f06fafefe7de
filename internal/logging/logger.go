// Package logging builds the zerolog loggers used by the CLI.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05"

// New returns a console logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
	}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewDefault logs to stderr, leaving stdout for the queue listing.
func NewDefault(verbose bool) zerolog.Logger {
	return New(os.Stderr, verbose)
}
