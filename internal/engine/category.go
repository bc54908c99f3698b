// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"context"
	"strings"

	"inkpress/internal/apperr"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

// ApplyCategoryDelta adjusts a category's published-post counter by
// delta. Blank names are skipped entirely. An existing counter is
// clamped at zero. A missing category is created only when the delta is
// positive, with the delta as its starting count; a negative delta
// against a missing category is dropped.
//
// The read-modify-write pair is not atomic: concurrent adjustments to
// the same category can lose an update. The counter is a denormalized
// tally, not a source of truth.
func (e *Engine) ApplyCategoryDelta(ctx context.Context, name string, delta int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	cat, err := e.store.GetCategory(ctx, name)
	if err != nil {
		return err
	}

	if cat == nil {
		if delta <= 0 {
			return nil
		}
		return e.store.PutCategory(ctx, &models.Category{Name: name, PostCount: delta})
	}

	cat.PostCount = max(0, cat.PostCount+delta)
	return e.store.PutCategory(ctx, cat)
}

// CreateCategory creates a category with a zero counter. The name is
// trimmed and must be non-empty; a duplicate name is a conflict.
func (e *Engine) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperr.Validation("Category name is required")
	}

	existing, err := e.store.GetCategory(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Category already exists")
	}

	cat := &models.Category{Name: trimmed}
	if description != "" {
		cat.Description = &description
	}
	if err := e.store.PutCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes a category by exact name. Posts referencing it
// keep their dangling reference.
func (e *Engine) DeleteCategory(ctx context.Context, name string) error {
	cat, err := e.store.GetCategory(ctx, name)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperr.NotFound("Category not found")
	}
	return e.store.DeleteCategory(ctx, name)
}

// CleanupInvalidCategories deletes every category whose name is empty or
// whitespace-only and returns the keys removed. Such records come from
// defects elsewhere; nothing in the engine creates them.
func (e *Engine) CleanupInvalidCategories(ctx context.Context) ([]string, error) {
	cats, err := e.store.ScanCategories(ctx)
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, c := range cats {
		if strings.TrimSpace(c.Name) != "" {
			continue
		}
		if err := e.store.DeleteCategory(ctx, c.Name); err != nil {
			return nil, err
		}
		deleted = append(deleted, store.CategoryKey(c.Name))
	}
	return deleted, nil
}
