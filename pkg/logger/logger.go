// Package logger provides a singleton structured logger backed by zerolog.
//
// The application renders to the terminal, so logs default to a file under
// the user state directory rather than stdout. Initialise once at startup
// with Init, then retrieve anywhere with Get.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Output overrides the destination. When nil, logs go to the file
	// returned by DefaultLogPath.
	Output io.Writer
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// DefaultLogPath returns the default log file location,
// ~/.config/turnos-admin/turnos-admin.log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "turnos-admin.log")
	}
	return filepath.Join(home, ".config", "turnos-admin", "turnos-admin.log")
}

// Init initialises the singleton logger. Safe to call multiple times; only
// the first call has any effect.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			path := DefaultLogPath()
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				f, ferr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if ferr == nil {
					out = f
				}
			}
			if out == nil {
				out = io.Discard
			}
		}

		lvl := parseLevel(opts.Level)

		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Logger()

		initialized = true
	})

	return instance
}

// Get returns the singleton logger, initialising it with defaults if Init
// was never called.
func Get() zerolog.Logger {
	if !initialized {
		return Init(Options{})
	}
	return instance
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
