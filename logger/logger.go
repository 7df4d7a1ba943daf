// Package logger configures structured logging for the server.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a slog.Logger writing to stderr: JSON in production,
// human-readable text otherwise.
func New(production bool) *slog.Logger {
	return NewWithWriter(os.Stderr, production)
}

func NewWithWriter(w io.Writer, production bool) *slog.Logger {
	level := slog.LevelDebug
	if production {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
