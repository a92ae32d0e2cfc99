// Package server wires configuration, storage, services and the gRPC
// transport into a runnable RagVault server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ragvault/internal/logging"
	"github.com/dmitrijs2005/ragvault/internal/server/config"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ragvault/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/ragvault/internal/server/grpc"
)

// Construction seams, replaced in tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepositoryManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
	newImageStore = func(ctx context.Context, c *config.Config) (services.ImageStore, error) {
		return services.NewS3ImageStore(ctx, c)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	images, err := newImageStore(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("image store: %w", err)
	}

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, gs.Services{
		Users:       services.NewUserService(db, rm, c),
		Vault:       services.NewVaultService(db, rm, images),
		Edits:       services.NewEditService(db, rm),
		Collections: services.NewCollectionService(db, rm),
	}, c.SecretKey)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// Run serves until ctx is cancelled or the process receives SIGINT,
// SIGTERM or SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(ctx)
	})

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
