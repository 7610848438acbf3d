package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/metrics"
	"bookshelf/internal/platform/logger"
	"bookshelf/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store.SetMigrationLogger(zl)
	repo, closeStore, err := openStore(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics.Register()

	handler, stopRouter := newRouter(cfg, repo, newResolver(cfg, zl), zl)
	defer stopRouter()

	// Lookups may chain two sources and two translators, so writes get more room than reads.
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.Addr), zap.String("store", cfg.StoreDriver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (book.Repository, func(), error) {
	repo, closeRepo, err := store.Open(ctx, cfg.StoreDriver, cfg.DSN, cfg.DBTimeout, cfg.AutoMigrate)
	if err != nil {
		return nil, nil, fmt.Errorf("database %s: %w", redactDSN(cfg.StoreDriver, cfg.DSN), err)
	}
	zl.Info("database connection OK",
		zap.String("driver", cfg.StoreDriver),
		zap.String("dsn", redactDSN(cfg.StoreDriver, cfg.DSN)),
		zap.Bool("auto_migrate", cfg.AutoMigrate),
	)
	return repo, closeRepo, nil
}

// redactDSN renders a postgres DSN without its password. SQLite paths carry no
// credentials and are returned as is.
func redactDSN(driver, dsn string) string {
	if driver != store.DriverPostgres {
		return dsn
	}
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Redacted()
	}
	cfg, err := pgconn.ParseConfig(dsn)
	if err != nil {
		return "[unparseable dsn]"
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s", cfg.Host, cfg.Port, cfg.Database, cfg.User)
}
