// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
)

// DefaultAdminToken is the development fallback for ADMIN_TOKEN.
// Production refuses to start with it.
const DefaultAdminToken = "admin-token-change-in-prod"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Shared secret guarding the admin API
	AdminToken string

	// Storage backend: "memory", "dynamo" or "postgres"
	StoreDriver string

	// DynamoDB settings
	DynamoTable    string
	DynamoRegion   string
	DynamoEndpoint string // local endpoint override, empty for real AWS

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis response cache; empty addr disables caching
	RedisAddr     string
	RedisPassword string

	// CORS allowed origin for /api/*
	CORSOrigin string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		AdminToken: envOrDefault("ADMIN_TOKEN", DefaultAdminToken),

		StoreDriver: envOrDefault("STORE_DRIVER", "memory"),

		DynamoTable:    envOrDefault("DYNAMODB_TABLE", "blog-table"),
		DynamoRegion:   envOrDefault("AWS_REGION", "us-east-1"),
		DynamoEndpoint: os.Getenv("DYNAMODB_HOST"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "inkpress"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "inkpress"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CORSOrigin: envOrDefault("CORS_ORIGIN", "*"),
	}

	switch cfg.StoreDriver {
	case "memory", "dynamo", "postgres":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want memory, dynamo or postgres)", cfg.StoreDriver)
	}

	if cfg.Env == "production" {
		if cfg.AdminToken == DefaultAdminToken {
			return nil, fmt.Errorf("ADMIN_TOKEN must be set in production")
		}
		if cfg.StoreDriver == "postgres" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
