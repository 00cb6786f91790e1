// Package logger wires up the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger built by Init.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn or error.
	// Anything else falls back to info.
	Level string
	// Pretty switches from JSON lines to the colored console writer. Meant
	// for local development only.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	instance zerolog.Logger
	once     sync.Once
)

// Init builds the shared logger. Subsequent calls return the logger from the
// first call unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		instance = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Caller().
			Logger()
	})
	return instance
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
