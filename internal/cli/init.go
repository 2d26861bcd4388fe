// Package cli provides common initialization shared by cmd/spendlog and
// cmd/spendlog-web.
package cli

import (
	"io"
	"os"

	"github.com/joho/godotenv"

	"spendlog/internal/config"
	applog "spendlog/internal/log"
	"spendlog/internal/service"
	"spendlog/internal/storage"
)

// SetupLogger initializes structured logging to the given writer and sets
// it as the process default. The terminal front end passes a log file here
// so records do not interleave with the rendered UI.
func SetupLogger(out io.Writer, level string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(level),
		Component: applog.ComponentApp,
		Output:    out,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenRepository initializes the configured data backend.
// Returns the repository or exits the process on failure.
func OpenRepository(logger *applog.Logger, cfg *config.Config) service.Repository {
	if cfg.DataBackend == "memory" {
		logger.Info("Initialized memory backend")
		return storage.NewMemoryRepository()
	}

	repo, err := storage.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	logger.Info("Initialized SQLite backend", "path", cfg.DBPath)
	return repo
}
