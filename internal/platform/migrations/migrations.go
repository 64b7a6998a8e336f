// Package migrations owns the database schema. Migrations are plain goose SQL
// files embedded per dialect and applied through a goose.Provider, so no
// migration files need to ship next to the binary.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Supported database drivers, matching config database.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandReset   = "reset"
	CommandVersion = "version"
)

// NewProvider returns a goose provider for the schema of the given driver.
func NewProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	fsys, err := fs.Sub(embedded, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s migrations: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	return Run(ctx, db, driver, CommandUp, slog.Default())
}

// Run executes a migration command and logs what it did. Status and version
// are reported through the logger.
func Run(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		"component", "migrations",
		"correlation_id", uuid.New().String(),
		"command", command,
		"driver", driver,
	)

	provider, err := NewProvider(db, driver)
	if err != nil {
		return err
	}

	start := time.Now()
	log.Info("starting migration operation")

	switch command {
	case CommandUp:
		results, err := provider.Up(ctx)
		logResults(log, results)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case CommandDown:
		result, err := provider.Down(ctx)
		if result != nil {
			logResults(log, []*goose.MigrationResult{result})
		}
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case CommandReset:
		results, err := provider.DownTo(ctx, 0)
		logResults(log, results)
		if err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
	case CommandStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		for _, st := range statuses {
			log.Info("migration status",
				"version", st.Source.Version,
				"file", st.Source.Path,
				"state", string(st.State),
				"applied_at", st.AppliedAt)
		}
	case CommandVersion:
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		log.Info("current schema version", "version", version)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	log.Info("migration operation completed",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func logResults(log *slog.Logger, results []*goose.MigrationResult) {
	if len(results) == 0 {
		log.Info("no migrations to run")
		return
	}
	for _, r := range results {
		attrs := []any{
			"version", r.Source.Version,
			"file", r.Source.Path,
			"direction", r.Direction,
			"duration_ms", r.Duration.Milliseconds(),
		}
		if r.Error != nil {
			log.Error("migration failed", append(attrs, "error", r.Error)...)
			continue
		}
		log.Info("migration applied", attrs...)
	}
}
