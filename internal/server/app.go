// Package server initializes and runs the account server: it opens the
// database, applies migrations, wires the services and serves HTTP until a
// shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/arondight/internal/logging"
	"github.com/dmitrijs2005/arondight/internal/server/auth"
	"github.com/dmitrijs2005/arondight/internal/server/config"
	"github.com/dmitrijs2005/arondight/internal/server/httpapi"
	"github.com/dmitrijs2005/arondight/internal/server/metrics"
	"github.com/dmitrijs2005/arondight/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/arondight/internal/server/services"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.NewPostgresRepositoryManager

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	accounts *services.AccountService
	issuer   *auth.Issuer
	metrics  *metrics.Metrics
}

// NewApp validates c, connects to PostgreSQL, runs migrations and wires the
// services. It fails without a signing secret.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	issuer, err := auth.NewIssuer(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	m := metrics.New()
	accounts := services.NewAccountService(db, rm, auth.NewBcryptHasher(auth.DefaultCost), issuer, logger, m)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		accounts: accounts,
		issuer:   issuer,
		metrics:  m,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accounts, app.issuer,
		app.metrics, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database pool.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
