// Package slogutil configures the process-wide structured logger.
package slogutil

import (
	"log/slog"
	"os"
)

// Setup installs a text handler on stderr as the default logger and returns
// it. Debug enables level Debug, otherwise Info.
func Setup(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
