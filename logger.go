package main

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a structured slog.Logger with the given level. Logs go to
// w (stderr in practice) so stdout stays free for the interactive shell.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// parseLevel maps a config/flag level name to a slog level. Unknown names mean info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
