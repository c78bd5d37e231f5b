package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Options configures Setup.
type Options struct {
	Level  string // "debug", "info", "warn" or "error" (default "info")
	Format string // "json" or "text" (default "text")
	File   string // appended to; empty logs to stderr only
	Stderr bool   // also write to stderr when File is set
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup opens the log destination once and returns a logger writing to it.
// The caller closes the returned io.Closer when the run is over.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", opts.File)
		}
		w, closer = f, f
		if opts.Stderr {
			w = io.MultiWriter(f, os.Stderr)
		}
	}

	return New(w, opts.Level, opts.Format), closer, nil
}

// New builds a logger on w.
func New(w io.Writer, level, format string) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(io.Discard, "error", "text")
}
