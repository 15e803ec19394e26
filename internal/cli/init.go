// Package cli implements the command surface: per-command flag parsing,
// validation, and the shared bootstrap (logger, .env, config, store).
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
// Diagnostics go to stderr; stdout is reserved for command output.
func SetupLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig loads and validates configuration, exiting on failure.
func LoadConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// openRepository opens the SQLite store (creating and migrating it when
// needed). Callers must Close the returned repository.
func openRepository(cfg *config.Config) (*storage.SQLiteRepository, error) {
	return storage.NewSQLiteRepository(cfg.DBPath)
}
