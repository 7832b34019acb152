// Package log configures the process-wide slog logger and tags records with
// the component that emitted them.
package log

import (
	"log/slog"
	"os"
)

// Standard component names used across the module.
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentBackup  = "backup"
	ComponentCLI     = "cli"
)

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// DefaultConfig returns sensible defaults for logging
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
	}
}

// New creates a slog logger with the given configuration, tagged with its
// component name.
func New(config Config) *slog.Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: config.Level,
		})
	}

	logger := slog.New(handler)
	if config.Component != "" {
		logger = logger.With("component", config.Component)
	}
	return logger
}

// SetDefault installs the logger as the process default so packages can log
// through the slog package functions.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
