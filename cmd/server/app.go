package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/roster-api/internal/api/middleware"
	"github.com/phrazzld/roster-api/internal/config"
	"github.com/phrazzld/roster-api/internal/platform/sqldb"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

// application holds the shared dependencies of the server and its commands.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqldb.DB

	jwtService auth.JWTService
	hasher     auth.PasswordHasher

	userService  service.UserService
	groupService service.GroupService
	authService  service.AuthService

	registry *prometheus.Registry
	metrics  *middleware.Metrics
}

// newApplication opens the database and wires every component.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := sqldb.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app, err := buildApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// buildApplication wires services around an already open database.
func buildApplication(cfg *config.Config, logger *slog.Logger, db *sqldb.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userStore := sqldb.NewUserStore(db, logger)
	groupStore := sqldb.NewGroupStore(db, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "roster"),
	)

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		jwtService:   jwtService,
		hasher:       hasher,
		userService:  service.NewUserService(userStore, groupStore, hasher, db.DB, logger),
		groupService: service.NewGroupService(groupStore, db.DB, logger),
		authService:  service.NewAuthService(userStore, hasher, jwtService, logger),
		registry:     registry,
		metrics:      middleware.NewMetrics(registry),
	}, nil
}

// migrate applies pending migrations.
func (app *application) migrate(ctx context.Context) error {
	migrator, err := sqldb.NewMigrator(app.db, app.logger)
	if err != nil {
		return err
	}
	return migrator.Up(ctx)
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
		return
	}
	app.logger.Info("database connection closed")
}
