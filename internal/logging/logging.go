package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "conda-env-detector"

// New returns a logger writing to w at info level, or debug level when debug is set.
func New(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Discard returns a logger that drops everything. Used as the default for
// library components that were not handed a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
