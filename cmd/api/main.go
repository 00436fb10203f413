package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/recipe-api/internal/config"
	"github.com/crucial707/recipe-api/internal/db"
	"github.com/crucial707/recipe-api/internal/repo"
	"github.com/crucial707/recipe-api/internal/scheduler"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the store FIRST
	st, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("connected to store", "driver", cfg.StoreDriver)

	stats, err := scheduler.Start(cfg.StatsCron, st.recipes)
	if err != nil {
		slog.Error("invalid STATS_CRON", "spec", cfg.StatsCron, "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(st, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server LAST
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "tls", cfg.TLSCertFile != "")
		if cfg.TLSCertFile != "" {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	<-stats.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func setupLogger(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openStores connects the backend named by cfg.StoreDriver. For Postgres the
// schema is migrated before the stores are handed out.
func openStores(ctx context.Context, cfg config.Config) (stores, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, database, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return stores{}, nil, err
		}
		st := stores{
			users:   repo.NewMongoUserStore(database),
			recipes: repo.NewMongoRecipeStore(database),
			audit:   repo.NewMongoAuditStore(database),
			ping:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
		}
		return st, func() { client.Disconnect(context.Background()) }, nil

	default:
		database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		if err != nil {
			return stores{}, nil, err
		}
		if err := db.Migrate(cfg.PostgresURL()); err != nil {
			database.Close()
			return stores{}, nil, err
		}
		return postgresStores(database), func() { database.Close() }, nil
	}
}
