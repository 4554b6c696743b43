package config

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON logger in production and a more readable text
// logger (with source locations) everywhere else.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: env != "production",
	}

	var handler slog.Handler
	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(slog.String("service", "presence"))
}
