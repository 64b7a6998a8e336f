package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/userbase-api/internal/config"
	"github.com/phrazzld/userbase-api/internal/platform/logger"
)

// loadAppConfig loads the application configuration from environment variables
// and an optional config.yaml in dir.
func loadAppConfig(dir string) (*config.Config, error) {
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger installs the JSON logger at the configured level and logs
// the non-secret parts of the configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"bcrypt_cost", cfg.Auth.BcryptCost,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	return l, nil
}
