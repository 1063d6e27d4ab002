// Package logging configures the application logger and drops known-noisy
// lines at the output boundary instead of patching callers.
package logging

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// FilterWriter forwards writes to an underlying writer unless the written
// line contains one of the suppressed patterns.
type FilterWriter struct {
	out      io.Writer
	patterns []string
	mu       sync.Mutex
	dropped  int
}

// NewFilterWriter wraps out. Empty patterns are ignored.
func NewFilterWriter(out io.Writer, patterns []string) *FilterWriter {
	fw := &FilterWriter{out: out}
	for _, p := range patterns {
		if p != "" {
			fw.patterns = append(fw.patterns, p)
		}
	}
	return fw
}

// Write implements io.Writer. Suppressed lines report success so the logger
// does not treat them as failures.
func (f *FilterWriter) Write(p []byte) (int, error) {
	for _, pattern := range f.patterns {
		if bytes.Contains(p, []byte(pattern)) {
			f.mu.Lock()
			f.dropped++
			f.mu.Unlock()
			return len(p), nil
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Write(p)
}

// Dropped returns how many lines have been suppressed so far.
func (f *FilterWriter) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

// ParseLevel maps a config string to a gommon level. Unknown values map to INFO.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Configure applies level and suppression list to an echo logger.
func Configure(l echo.Logger, out io.Writer, level string, suppress []string) *FilterWriter {
	fw := NewFilterWriter(out, suppress)
	l.SetOutput(fw)
	l.SetLevel(ParseLevel(level))
	return fw
}

// New returns a standalone logger with the given prefix, for code that runs
// outside an echo instance (tests, background jobs).
func New(prefix string, out io.Writer, level string, suppress []string) echo.Logger {
	l := log.New(prefix)
	Configure(l, out, level, suppress)
	return l
}

// Discard returns a logger that writes nowhere.
func Discard() echo.Logger {
	return New("discard", io.Discard, "off", nil)
}
