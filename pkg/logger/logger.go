// Package logger holds the process-wide slog logger for the talent hub
// services: JSON output in production, human-readable debug output
// everywhere else.
package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Init configures the process logger for the given environment and installs
// it as slog's default.
func Init(env string) {
	var handler slog.Handler

	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler).With("service", "talent-hub")
	slog.SetDefault(defaultLogger)
}

// LoggerWrapper returns the process logger, initializing a development one
// when Init has not run yet.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
