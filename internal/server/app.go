// Package server wires configuration, storage and services together and runs
// the gRPC and HTTP front ends until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/config"
	"github.com/dmitrijs2005/streakkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/streakkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/streakkeeper/internal/server/grpc"
)

// runner is anything that serves until its context is cancelled.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	runners map[string]runner
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, m repomanager.RepositoryManager) (*App, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	us := services.NewUserService(db, m, c, logger)
	hs := services.NewHabitService(db, m, loc, logger)
	ls := services.NewLeaderboardService(db, m, loc, c.LeaderboardLimit, logger)

	grpcServer := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, hs, ls)
	httpServer := httpapi.NewServer(c.EndpointAddrHTTP, logger, grpcServer, us, c.CORSAllowOrigins)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		runners: map[string]runner{
			"grpc": grpcServer,
			"http": httpServer,
		},
	}, nil
}

// Run starts every front end and blocks until ctx is cancelled, a signal
// arrives or one of them fails. The first failure stops the others.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	for name, r := range app.runners {
		g.Go(func() error {
			if err := r.Run(ctx); err != nil {
				app.logger.Error(ctx, "server stopped", "server", name, "error", err)
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(context.Background(), "closing database", "error", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}

// Main loads configuration and runs the server. It returns the process exit
// code.
func Main() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx := context.Background()
	app, err := NewApp(ctx, cfg, logger, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		return 1
	}
	return 0
}
