// Package app holds the assembled application and its lifecycle.
package app

import (
	"context"
	"log/slog"

	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/db"
	"github.com/tophbot/toph/internal/server"
)

// App holds the main application components.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	server *server.Server
	dbConn *db.DB
	logger *slog.Logger
}

// NewApp assembles the application from its wired components.
func NewApp(ctx context.Context, cfg *config.Config, dbConn *db.DB, srv *server.Server, logger *slog.Logger) *App {
	return &App{
		ctx:    ctx,
		cfg:    cfg,
		server: srv,
		dbConn: dbConn,
		logger: logger,
	}
}

// Start runs the HTTP server and blocks until shutdown.
func (a *App) Start() error {
	a.logger.Info("starting toph",
		"server_port", a.cfg.ServerPort,
		"llm_provider", a.cfg.LLMProvider,
		"generator_model", a.cfg.GeneratorModelName,
	)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down toph services")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.logger.Info("closing database connection")
	if err := a.dbConn.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("toph stopped successfully")
	return nil
}
