// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine implements the write-side rules for blog posts and
// categories: content sanitization on the way in, slug and excerpt
// derivation, and the bookkeeping that keeps each category's published
// post counter in step with post status and category transitions.
//
// Read paths do not go through the engine; handlers query the store
// directly and filter for visibility.
package engine

import (
	"context"
	"strings"
	"time"

	"inkpress/internal/apperr"
	"inkpress/internal/ids"
	"inkpress/internal/models"
	"inkpress/internal/sanitize"
	"inkpress/internal/slug"
	"inkpress/internal/store"
)

// Engine orchestrates post writes against the store. Every stored
// rendered body has passed the sanitizer, and every status or category
// change is reflected exactly once in the affected category counters.
//
// The post write and the counter write are separate store operations
// with no transaction around them: if the counter update fails the post
// write stays, and the error surfaces to the caller.
type Engine struct {
	store     store.Store
	sanitizer *sanitize.Sanitizer
}

// New creates an engine over the given store.
func New(s store.Store, san *sanitize.Sanitizer) *Engine {
	return &Engine{store: s, sanitizer: san}
}

// CreatePostInput carries the fields accepted when creating a post.
// Title, ContentRaw and ContentRendered are required; the rest are
// optional, with empty treated as absent.
type CreatePostInput struct {
	Title           string
	ContentRaw      string
	ContentRendered string
	Excerpt         string
	Category        string
	Status          string
}

// UpdatePostInput carries the fields accepted when updating a post.
// Nil pointers leave the stored field untouched.
type UpdatePostInput struct {
	Title           *string
	ContentRaw      *string
	ContentRendered *string
	Excerpt         *string
	Category        *string
	Status          *string
}

// CreatePost validates the input, sanitizes the rendered content,
// derives slug and excerpt, and persists the new post. Status defaults
// to DRAFT and is uppercased otherwise. A post created directly as
// PUBLISHED gets its publish timestamp immediately, and its category
// counter (if it has a category) is incremented.
func (e *Engine) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.ContentRaw == "" {
		missing = append(missing, "content_raw")
	}
	if in.ContentRendered == "" {
		missing = append(missing, "content_rendered")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}

	now := time.Now().UTC()

	status := models.StatusDraft
	if in.Status != "" {
		status = models.PostStatus(strings.ToUpper(in.Status))
	}

	sanitized := e.sanitizer.Clean(in.ContentRendered)

	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = e.sanitizer.Excerpt(sanitized, sanitize.DefaultExcerptLength)
	}

	post := &models.Post{
		ID:              ids.New(),
		Title:           in.Title,
		Slug:            slug.Generate(in.Title),
		Excerpt:         excerpt,
		Status:          status,
		ContentRaw:      in.ContentRaw,
		ContentRendered: sanitized,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		post.Category = &c
	}
	if status == models.StatusPublished {
		t := now
		post.PublishedAt = &t
	}

	if err := e.store.PutPost(ctx, post); err != nil {
		return nil, err
	}

	if post.IsPublished() && post.Category != nil {
		if err := e.ApplyCategoryDelta(ctx, *post.Category, 1); err != nil {
			return nil, err
		}
	}

	return post, nil
}

// UpdatePost applies a partial update to an existing post. Only fields
// present in the input change. A title change regenerates the slug. A
// rendered-content change re-sanitizes and, unless an excerpt was
// supplied in the same request, regenerates the excerpt. The publish
// timestamp is set the first time the post transitions into PUBLISHED
// and never touched again, including across unpublish/republish cycles.
//
// After the post is persisted, the (status, category) transition is
// applied to the category counters; see applyTransition.
func (e *Engine) UpdatePost(ctx context.Context, id string, in UpdatePostInput) (*models.Post, error) {
	post, err := e.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.NotFound("Blog post not found")
	}

	oldStatus := post.Status
	oldCategory := post.CategoryName()

	now := time.Now().UTC()

	if in.Title != nil {
		post.Title = *in.Title
		post.Slug = slug.Generate(*in.Title)
	}
	if in.ContentRendered != nil {
		post.ContentRendered = e.sanitizer.Clean(*in.ContentRendered)
		if in.Excerpt == nil {
			post.Excerpt = e.sanitizer.Excerpt(post.ContentRendered, sanitize.DefaultExcerptLength)
		}
	}
	if in.ContentRaw != nil {
		post.ContentRaw = *in.ContentRaw
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Category != nil {
		if c := strings.TrimSpace(*in.Category); c != "" {
			post.Category = &c
		} else {
			post.Category = nil
		}
	}
	if in.Status != nil && *in.Status != "" {
		post.Status = models.PostStatus(strings.ToUpper(*in.Status))
		if post.Status == models.StatusPublished && oldStatus != models.StatusPublished && post.PublishedAt == nil {
			t := now
			post.PublishedAt = &t
		}
	}
	post.UpdatedAt = now

	if err := e.store.PutPost(ctx, post); err != nil {
		return nil, err
	}

	if err := e.applyTransition(ctx, oldStatus, oldCategory, post.Status, post.CategoryName()); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post. If the post is currently PUBLISHED and
// carries a category, that category's counter is decremented first; the
// delete does not run if the decrement fails.
func (e *Engine) DeletePost(ctx context.Context, id string) error {
	post, err := e.store.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return apperr.NotFound("Blog post not found")
	}

	if post.IsPublished() && post.Category != nil {
		if err := e.ApplyCategoryDelta(ctx, *post.Category, -1); err != nil {
			return err
		}
	}

	return e.store.DeletePost(ctx, id)
}

// applyTransition reflects a post's before/after (status, category) pair
// in the category counters. Exactly one of four cases applies:
// unpublishing decrements the old category, publishing increments the
// new one, a category change while published does both, and anything
// else is a no-op. Absent categories are skipped by ApplyCategoryDelta.
func (e *Engine) applyTransition(ctx context.Context, oldStatus models.PostStatus, oldCategory string, newStatus models.PostStatus, newCategory string) error {
	wasPublished := oldStatus == models.StatusPublished
	isPublished := newStatus == models.StatusPublished

	switch {
	case wasPublished && !isPublished:
		return e.ApplyCategoryDelta(ctx, oldCategory, -1)
	case !wasPublished && isPublished:
		return e.ApplyCategoryDelta(ctx, newCategory, 1)
	case wasPublished && isPublished && oldCategory != newCategory:
		if err := e.ApplyCategoryDelta(ctx, oldCategory, -1); err != nil {
			return err
		}
		return e.ApplyCategoryDelta(ctx, newCategory, 1)
	}
	return nil
}
