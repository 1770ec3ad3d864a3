package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's own slog.Logger from the configured level and
// format. The global logger is left alone so several apps can coexist in one
// test binary. Unknown levels fall back to info; debug also records the
// source position of each call.
func newLogger(level, format string, outW io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
