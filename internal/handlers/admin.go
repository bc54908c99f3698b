// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the InkPress blog API.
// Handlers are grouped by surface (admin, public) and receive their
// dependencies through the handler struct.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/apperr"
	"inkpress/internal/cache"
	"inkpress/internal/engine"
	"inkpress/internal/models"
	"inkpress/internal/respond"
	"inkpress/internal/store"
)

// Admin groups the token-guarded management handlers: full CRUD over
// posts regardless of status, category management, and the cleanup
// sweep for damaged category records.
type Admin struct {
	engine *engine.Engine
	store  store.Store
	cache  *cache.ResponseCache
}

// NewAdmin creates a new Admin handler group. cache may be nil when
// Redis is not configured.
func NewAdmin(eng *engine.Engine, st store.Store, rc *cache.ResponseCache) *Admin {
	return &Admin{engine: eng, store: st, cache: rc}
}

// Health reports liveness of the admin surface.
func (a *Admin) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{"status": "healthy", "admin": true})
}

// --- Posts ---

// ListPosts returns summaries of all posts, drafts included. An optional
// status query parameter narrows the list via the status index, newest
// first; without it the handler scans the whole table.
func (a *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultAdminLimit, maxAdminLimit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var posts []models.Post
	if status := r.URL.Query().Get("status"); status != "" {
		posts, err = a.store.QueryByStatus(r.Context(), models.PostStatus(strings.ToUpper(status)), limit, true)
	} else {
		posts, err = a.store.ScanPosts(r.Context(), limit)
	}
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"posts": models.Summaries(posts),
		"count": len(posts),
	})
}

// GetPost returns one post in full, whatever its status.
func (a *Admin) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := a.store.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	if post == nil {
		respond.Error(w, apperr.NotFound("Blog post not found"))
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"post": post})
}

// CreatePost creates a post from the request body and returns it in
// full, including the generated id, slug and timestamps.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBody(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	post, err := a.engine.CreatePost(r.Context(), engine.CreatePostInput{
		Title:           stringOr(fields, "title"),
		ContentRaw:      stringOr(fields, "content_raw"),
		ContentRendered: stringOr(fields, "content_rendered"),
		Excerpt:         stringOr(fields, "excerpt"),
		Category:        stringOr(fields, "category"),
		Status:          stringOr(fields, "status"),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	a.cache.InvalidateAll(r.Context())
	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Blog post created successfully",
		"post":    post,
	})
}

// UpdatePost applies a partial update. Only fields present in the body
// change; see engine.UpdatePost for the field rules.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBody(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	post, err := a.engine.UpdatePost(r.Context(), chi.URLParam(r, "id"), engine.UpdatePostInput{
		Title:           stringField(fields, "title"),
		ContentRaw:      stringField(fields, "content_raw"),
		ContentRendered: stringField(fields, "content_rendered"),
		Excerpt:         stringField(fields, "excerpt"),
		Category:        stringField(fields, "category"),
		Status:          stringField(fields, "status"),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	a.cache.InvalidateAll(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Blog post updated successfully",
		"post":    post,
	})
}

// DeletePost removes a post, settling its category counter first.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := a.engine.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}

	a.cache.InvalidateAll(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Blog post deleted successfully"})
}

// --- Categories ---

// ListCategories returns every category record, including damaged ones
// with blank names, so admins can see what cleanup would remove.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.store.ScanCategories(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory registers a new category with a zero post counter.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBody(r)
	if err != nil {
		// A missing body and a missing name report the same problem here.
		respond.Error(w, apperr.Validation("Category name is required"))
		return
	}

	category, err := a.engine.CreateCategory(r.Context(), stringOr(fields, "name"), stringOr(fields, "description"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	a.cache.InvalidateAll(r.Context())
	respond.JSON(w, http.StatusCreated, map[string]any{
		"message":  "Category created successfully",
		"category": category,
	})
}

// DeleteCategory removes a category by exact name. Posts keep any
// dangling reference to it.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := a.engine.DeleteCategory(r.Context(), categoryParam(r)); err != nil {
		respond.Error(w, err)
		return
	}

	a.cache.InvalidateAll(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Category deleted successfully"})
}

// CleanupCategories deletes every category whose name is blank and
// reports the removed keys.
func (a *Admin) CleanupCategories(w http.ResponseWriter, r *http.Request) {
	deleted, err := a.engine.CleanupInvalidCategories(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	if deleted == nil {
		deleted = []string{}
	}

	a.cache.InvalidateAll(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("Cleaned up %d invalid categories", len(deleted)),
		"deleted_keys": deleted,
	})
}
