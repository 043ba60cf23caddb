package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"settingskit/internal/config"
)

// newCommandLogger logs human-readable text when stderr is a terminal and
// JSON when it is piped, e.g. in CI.
func newCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

func setDefaultLogger(cfg *config.Config) {
	slog.SetDefault(newCommandLogger(cfg.SlogLevel()))
}
