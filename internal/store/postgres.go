// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"inkpress/internal/models"
)

// PostgresStore implements Store on a single PostgreSQL table that mirrors
// the DynamoDB single-table layout: rows keyed by (pk, sk) with the full
// document as JSONB and the queryable fields extracted into columns. Two
// partial indexes over (status, published_at) and (category, published_at)
// play the role of the sparse secondary indexes.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a PostgresStore with the given database
// connection. The caller is responsible for running migrations first.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) PutPost(ctx context.Context, p *models.Post) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (pk, sk, doc, status, category, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (pk, sk) DO UPDATE SET
			doc = EXCLUDED.doc,
			status = EXCLUDED.status,
			category = EXCLUDED.category,
			published_at = EXCLUDED.published_at
	`, PostKey(p.ID), MetadataSK, doc, string(p.Status), p.Category, p.PublishedAt)
	if err != nil {
		return fmt.Errorf("put post: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM records WHERE pk = $1 AND sk = $2
	`, PostKey(id), MetadataSK).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	p := &models.Post{}
	if err := json.Unmarshal(doc, p); err != nil {
		return nil, fmt.Errorf("unmarshal post: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) DeletePost(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM records WHERE pk = $1 AND sk = $2
	`, PostKey(id), MetadataSK)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostgresStore) QueryByStatus(ctx context.Context, status models.PostStatus, limit int, newestFirst bool) ([]models.Post, error) {
	dir := sortDirection(newestFirst)
	q := `
		SELECT doc FROM records
		WHERE status = $1 AND published_at IS NOT NULL
		ORDER BY published_at ` + dir + `, pk ` + dir
	args := []any{string(status)}
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts by status: %w", err)
	}
	return scanPostDocs(rows)
}

func (s *PostgresStore) QueryByCategory(ctx context.Context, category string, limit int, newestFirst bool, statusFilter models.PostStatus) ([]models.Post, error) {
	dir := sortDirection(newestFirst)
	q := `
		SELECT doc FROM records
		WHERE category = $1 AND published_at IS NOT NULL`
	args := []any{category}
	if statusFilter != "" {
		args = append(args, string(statusFilter))
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	q += " ORDER BY published_at " + dir + ", pk " + dir
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts by category: %w", err)
	}
	return scanPostDocs(rows)
}

// ScanPosts returns posts newest-first. Post ids are time-ordered, so
// descending pk order is creation order.
func (s *PostgresStore) ScanPosts(ctx context.Context, limit int) ([]models.Post, error) {
	q := `
		SELECT doc FROM records
		WHERE pk LIKE 'BLOG#%' AND sk = $1
		ORDER BY pk DESC`
	args := []any{MetadataSK}
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}
	return scanPostDocs(rows)
}

func (s *PostgresStore) PutCategory(ctx context.Context, c *models.Category) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal category: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (pk, sk, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (pk, sk) DO UPDATE SET doc = EXCLUDED.doc
	`, CategoryKey(c.Name), MetadataSK, doc)
	if err != nil {
		return fmt.Errorf("put category: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, name string) (*models.Category, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM records WHERE pk = $1 AND sk = $2
	`, CategoryKey(name), MetadataSK).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	c := &models.Category{}
	if err := json.Unmarshal(doc, c); err != nil {
		return nil, fmt.Errorf("unmarshal category: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM records WHERE pk = $1 AND sk = $2
	`, CategoryKey(name), MetadataSK)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *PostgresStore) ScanCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM records
		WHERE pk LIKE 'CATEGORY#%' AND sk = $1
		ORDER BY pk
	`, MetadataSK)
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		var c models.Category
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("unmarshal category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func sortDirection(newestFirst bool) string {
	if newestFirst {
		return "DESC"
	}
	return "ASC"
}

func scanPostDocs(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		var p models.Post
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("unmarshal post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
