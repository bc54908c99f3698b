// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists posts and categories in a single-table key/value
// layout and answers the filtered queries the engine and handlers need.
// Three drivers implement the contract: DynamoDB for the serverless
// deployment, PostgreSQL for self-hosting, and an in-memory map for tests
// and local development.
package store

import (
	"context"

	"inkpress/internal/models"
)

// Key scheme of the single-table layout. Every record lives under a typed
// partition key and the fixed metadata sort key.
const (
	// MetadataSK is the sort key under which each record stores its single
	// metadata item.
	MetadataSK = "METADATA"

	postKeyPrefix     = "BLOG#"
	categoryKeyPrefix = "CATEGORY#"
)

// PostKey returns the partition key for a post id.
func PostKey(id string) string { return postKeyPrefix + id }

// CategoryKey returns the partition key for a category name.
func CategoryKey(name string) string { return categoryKeyPrefix + name }

// Store is the persistence contract shared by all drivers.
//
// Lookup methods return nil with a nil error when no record exists at the
// requested key; callers decide whether absence is an error. Deletes of
// absent keys succeed silently. Categories are keyed by exact,
// case-sensitive name.
//
// QueryByStatus and QueryByCategory only see posts that carry a published
// timestamp: the indexes behind them are sparse, so a post that has never
// been published is invisible to both regardless of its current status.
// Results are ordered by that timestamp. A limit of zero or less means
// unbounded.
type Store interface {
	PutPost(ctx context.Context, p *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	QueryByStatus(ctx context.Context, status models.PostStatus, limit int, newestFirst bool) ([]models.Post, error)
	QueryByCategory(ctx context.Context, category string, limit int, newestFirst bool, statusFilter models.PostStatus) ([]models.Post, error)
	// ScanPosts returns up to limit posts of any status, published or not.
	// Ordering is driver-dependent; callers needing a defined order must
	// sort the result themselves.
	ScanPosts(ctx context.Context, limit int) ([]models.Post, error)

	PutCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, name string) error
	// ScanCategories returns every category record, including ones with
	// blank names left behind by defects, so sweeps can find them.
	ScanCategories(ctx context.Context) ([]models.Category, error)
}
