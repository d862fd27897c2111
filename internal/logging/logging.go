// Package logging configures the structured logger shared by every
// command. Logs always go to stderr: stdout is reserved for the JSON
// result record.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a JSON logger on stderr. Verbose drops the level to Debug so
// tier-by-tier routing decisions show up.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return NewWriter(os.Stderr, level)
}

// NewWriter builds a JSON logger on an arbitrary writer, for tests.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("component", "deskagent"))
}
