// Package main implements the entry point for the userbase API server, which
// manages user accounts over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/userbase-api/internal/platform/migrations"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up|down|status|reset|version) and exit")
	configDir := flag.String("config-dir", ".", "directory containing an optional config.yaml")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configDir, *migrateCmd); err != nil {
		log.Fatalf("userbase-api: %v", err)
	}
}

// run wires the application together. With a migration command it only
// migrates; otherwise it applies pending migrations and serves until ctx ends.
func run(ctx context.Context, configDir, migrateCmd string) error {
	cfg, err := loadAppConfig(configDir)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if migrateCmd != "" {
		return migrations.Run(ctx, db, cfg.Database.Driver, migrateCmd, logger)
	}

	if err := migrations.Run(ctx, db, cfg.Database.Driver, migrations.CommandUp, logger); err != nil {
		return fmt.Errorf("failed to apply migrations on startup: %w", err)
	}

	app, err := newApplication(cfg, logger, db, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
