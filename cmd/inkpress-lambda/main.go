// Package main is the entry point for the InkPress API on AWS Lambda.
// The same Chi router that backs the standalone server is wrapped in an
// API Gateway proxy adapter, so both deployments expose identical routes.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"inkpress/internal/auth"
	"inkpress/internal/cache"
	"inkpress/internal/config"
	"inkpress/internal/engine"
	"inkpress/internal/handlers"
	"inkpress/internal/router"
	"inkpress/internal/sanitize"
	"inkpress/internal/store"
)

func main() {
	// Structured logger; JSON output for CloudWatch.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
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
		"table", cfg.DynamoTable,
	)

	// The Lambda deployment always pairs with DynamoDB. The table and
	// its indexes are managed infrastructure, never provisioned here.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := store.NewDynamoClient(ctx, cfg.DynamoRegion, cfg.DynamoEndpoint)
	if err != nil {
		slog.Error("failed to create dynamodb client", "error", err)
		os.Exit(1)
	}
	st := store.NewDynamoStore(client, cfg.DynamoTable)

	// The response cache is optional: without REDIS_ADDR the public
	// surface runs uncached, and a failed connection only costs caching.
	var responseCache *cache.ResponseCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Warn("redis unavailable, serving uncached", "error", err)
		} else {
			responseCache = cache.NewResponseCache(redisClient, cache.DefaultResponseTTL)
		}
	}

	eng := engine.New(st, sanitize.New())
	verifier := auth.NewVerifier(cfg.AdminToken)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(eng, st, responseCache)
	publicHandlers := handlers.NewPublic(st, responseCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(verifier, cfg.CORSOrigin, adminHandlers, publicHandlers)

	// Clients created above live for the lifetime of the execution
	// environment and are reused across invocations.
	adapter := httpadapter.New(r)
	lambda.Start(adapter.ProxyWithContext)
}
