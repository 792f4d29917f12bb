// ABOUTME: Constructs the leveled stderr logger used outside the catalog core
// ABOUTME: Wraps charmbracelet/log with a prefix and a configured level

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when the configured level is empty or unknown.
const DefaultLevel = log.WarnLevel

// New returns a logger writing to w (stderr when nil) at the given level name.
// Unknown level names fall back to DefaultLevel.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "modscmd",
		Level:  ParseLevel(level),
	})
}

// ParseLevel maps a level name ("debug", "info", "warn", "error") to a log.Level.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
