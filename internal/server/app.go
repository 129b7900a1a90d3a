// Package server wires the backend together: PostgreSQL storage with its
// migrations, the account and history services, and the gin HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/geotracker/internal/logging"
	"github.com/dmitrijs2005/geotracker/internal/server/config"
	"github.com/dmitrijs2005/geotracker/internal/server/httpserver"
	"github.com/dmitrijs2005/geotracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/geotracker/internal/server/services"
	"golang.org/x/sync/errgroup"
)

// Seams for tests.
var (
	openDB         = repomanager.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpserver.HTTPServer
}

// NewApp connects to the database, applies migrations and builds the HTTP
// server. The caller owns the returned App and must call Run.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	hs := services.NewHistoryService(db, rm)
	srv := httpserver.NewHTTPServer(cfg.EndpointAddr, logger, us, hs, cfg.CookieSecure)

	return &App{config: cfg, logger: logger, db: db, http: srv}, nil
}

// Run serves until ctx is cancelled or the server fails, then closes the
// database.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.http.Run(gctx)
	})

	err := g.Wait()

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
