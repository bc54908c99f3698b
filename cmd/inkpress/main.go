// Package main is the entry point for the InkPress API server.
// It loads configuration, opens the selected store driver, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpress/internal/auth"
	"inkpress/internal/cache"
	"inkpress/internal/config"
	"inkpress/internal/database"
	"inkpress/internal/engine"
	"inkpress/internal/handlers"
	"inkpress/internal/router"
	"inkpress/internal/sanitize"
	"inkpress/internal/store"
)

func main() {
	// Structured logger; text output for terminals.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"driver", cfg.StoreDriver,
	)

	// Open the persistence driver selected by STORE_DRIVER.
	st, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// The response cache is optional: without REDIS_ADDR the public
	// surface runs uncached, and a failed connection only costs caching.
	var responseCache *cache.ResponseCache
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Warn("redis unavailable, serving uncached", "error", err)
		} else {
			defer client.Close()
			responseCache = cache.NewResponseCache(client, cache.DefaultResponseTTL)
		}
	}

	eng := engine.New(st, sanitize.New())
	verifier := auth.NewVerifier(cfg.AdminToken)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(eng, st, responseCache)
	publicHandlers := handlers.NewPublic(st, responseCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(verifier, cfg.CORSOrigin, adminHandlers, publicHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openStore builds the store selected by STORE_DRIVER, returning a
// cleanup function for drivers that hold connections.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case "memory":
		slog.Warn("memory store selected, data is not persisted")
		return store.NewMemoryStore(), noop, nil

	case "postgres":
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return store.NewPostgresStore(db), func() { db.Close() }, nil

	case "dynamo":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		client, err := store.NewDynamoClient(ctx, cfg.DynamoRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, noop, err
		}
		ds := store.NewDynamoStore(client, cfg.DynamoTable)
		if cfg.IsDev() {
			// Provision the table and its indexes when running against
			// local DynamoDB; in production the table is managed
			// infrastructure.
			if err := ds.EnsureTable(ctx); err != nil {
				return nil, noop, err
			}
		}
		return ds, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
