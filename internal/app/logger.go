package app

import (
	"io"
	"log/slog"
)

// newLogger builds the compiler's logger from the validated Config fields.
// The instance is never installed globally: every App carries its own, so
// tests and embedders can run compilers side by side with isolated output.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
