package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/userbase-api/internal/config"
	"github.com/phrazzld/userbase-api/internal/platform/migrations"
	"github.com/phrazzld/userbase-api/internal/platform/postgres"
	"github.com/phrazzld/userbase-api/internal/platform/sqlite"
	"github.com/phrazzld/userbase-api/internal/service"
	"github.com/phrazzld/userbase-api/internal/service/auth"
	"github.com/phrazzld/userbase-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore   store.UserStore
	txRunner    store.TxRunner
	hasher      auth.PasswordHasher
	jwtService  auth.JWTService
	userService service.UserService

	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

// newApplication creates the application with every dependency wired.
// Metrics are registered with reg and served from gatherer.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*application, error) {
	app := &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		registerer: reg,
		gatherer:   gatherer,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.userStore, err = newUserStore(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}
	app.txRunner = store.NewTxRunner(db)
	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	core := service.NewUserService(app.userStore, app.txRunner, app.hasher, logger)
	app.userService, err = service.NewInstrumentedUserService(core, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register service metrics: %w", err)
	}

	return app, nil
}

// newUserStore picks the store implementation for driver.
func newUserStore(driver string, db *sql.DB, logger *slog.Logger) (store.UserStore, error) {
	switch driver {
	case migrations.DriverPostgres:
		return postgres.NewPostgresUserStore(db, logger), nil
	case migrations.DriverSQLite:
		return sqlite.NewUserStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

func (app *application) shutdownTimeout() time.Duration {
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}
