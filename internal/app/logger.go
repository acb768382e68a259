package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the run's logger. Unknown levels fall back to info and any
// format other than "json" produces text. The logger is never installed as
// the global default, so parallel Apps in tests stay isolated.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(formatStr, "json") {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
