// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.WarnLevel)
)

// Setup sets the global log level. Unrecognized levels keep the default.
func Setup(level string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		base = base.Level(zerolog.TraceLevel)
	case "debug":
		base = base.Level(zerolog.DebugLevel)
	case "info":
		base = base.Level(zerolog.InfoLevel)
	case "warn", "warning":
		base = base.Level(zerolog.WarnLevel)
	case "error":
		base = base.Level(zerolog.ErrorLevel)
	case "disabled", "off":
		base = base.Level(zerolog.Disabled)
	}
}

// Component returns a logger tagged with a component name.
func Component(name string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With().Str("component", name).Logger()
}
