// Package logging configures the charmbracelet/log loggers of the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Prefix starts every line the CLI logs.
const Prefix = "mdhighlight"

var (
	mu            sync.Mutex
	defaultLogger *log.Logger
)

// New returns a stderr logger at the named level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at the named level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  ParseLevel(level),
	})
}

// ParseLevel maps a level name to a log.Level, ignoring case.
// "warning" is accepted for warn. Unknown names give info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Default returns the process-wide logger, creating it at info level on first use.
func Default() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}
