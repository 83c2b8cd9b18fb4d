package main

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger builds the run's logger from the -log-level and -log-format
// flags. Records go to logW, kept apart from the frames written to stdout.
func newLogger(levelStr, formatStr string, logW io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return nil, fmt.Errorf("log-level: %w", err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(logW, handlerOpts)
	if formatStr == "json" {
		handler = slog.NewJSONHandler(logW, handlerOpts)
	}

	return slog.New(handler).With("app", "gridstar"), nil
}
