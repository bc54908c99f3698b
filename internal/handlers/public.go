// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/apperr"
	"inkpress/internal/cache"
	"inkpress/internal/models"
	"inkpress/internal/respond"
	"inkpress/internal/store"
)

// Public groups the unauthenticated read handlers. Only published posts
// are visible through them. When a response cache is configured, list
// and detail payloads are served from Redis and refilled on miss.
type Public struct {
	store store.Store
	cache *cache.ResponseCache
}

// NewPublic creates a new Public handler group. cache may be nil when
// Redis is not configured.
func NewPublic(st store.Store, rc *cache.ResponseCache) *Public {
	return &Public{store: st, cache: rc}
}

// Health reports liveness of the public surface.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ListPosts returns summaries of published posts, newest first. An
// optional category query parameter narrows the list to one category.
func (p *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := parseLimit(r, defaultPublicLimit, maxPublicLimit)
	if err != nil {
		respond.Error(w, err)
		return
	}
	category := r.URL.Query().Get("category")

	key := fmt.Sprintf("blogs:%d:%s", limit, category)
	if cached, ok := p.cache.Get(ctx, key); ok {
		respond.Raw(w, http.StatusOK, cached)
		return
	}

	var posts []models.Post
	if category != "" {
		posts, err = p.store.QueryByCategory(ctx, category, limit, true, models.StatusPublished)
	} else {
		posts, err = p.store.QueryByStatus(ctx, models.StatusPublished, limit, true)
	}
	if err != nil {
		respond.Error(w, err)
		return
	}

	p.writeCached(ctx, w, key, map[string]any{
		"posts": models.Summaries(posts),
		"count": len(posts),
	})
}

// Latest returns the single most recently published post in full.
func (p *Public) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.cache.Get(ctx, "latest"); ok {
		respond.Raw(w, http.StatusOK, cached)
		return
	}

	posts, err := p.store.QueryByStatus(ctx, models.StatusPublished, 1, true)
	if err != nil {
		respond.Error(w, err)
		return
	}
	if len(posts) == 0 {
		respond.Error(w, apperr.NotFound("No published blogs found"))
		return
	}

	p.writeCached(ctx, w, "latest", map[string]any{"post": posts[0]})
}

// GetPost returns a single published post by id. Posts that exist but
// are not published are indistinguishable from absent ones.
func (p *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	key := "blog:" + id
	if cached, ok := p.cache.Get(ctx, key); ok {
		respond.Raw(w, http.StatusOK, cached)
		return
	}

	post, err := p.store.GetPost(ctx, id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	if post == nil || !post.IsPublished() {
		respond.Error(w, apperr.NotFound("Blog post not found"))
		return
	}

	p.writeCached(ctx, w, key, map[string]any{"post": post})
}

// GetPostBySlug returns a single published post by slug. The slug lives
// only inside the stored document, so the lookup walks the published
// index and takes the first match.
func (p *Public) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	key := "slug:" + slugParam
	if cached, ok := p.cache.Get(ctx, key); ok {
		respond.Raw(w, http.StatusOK, cached)
		return
	}

	posts, err := p.store.QueryByStatus(ctx, models.StatusPublished, 0, false)
	if err != nil {
		respond.Error(w, err)
		return
	}
	for i := range posts {
		if posts[i].Slug == slugParam {
			p.writeCached(ctx, w, key, map[string]any{"post": posts[i]})
			return
		}
	}
	respond.Error(w, apperr.NotFound("Blog post not found"))
}

// ListCategories returns every category with a usable name. Records
// with blank names are hidden here; the admin cleanup endpoint removes
// them.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.cache.Get(ctx, "categories"); ok {
		respond.Raw(w, http.StatusOK, cached)
		return
	}

	all, err := p.store.ScanCategories(ctx)
	if err != nil {
		respond.Error(w, err)
		return
	}

	categories := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.HasValidName() {
			categories = append(categories, c)
		}
	}

	p.writeCached(ctx, w, "categories", map[string]any{
		"categories": categories,
		"count":      len(categories),
	})
}

// writeCached marshals the payload once, stores it in the response
// cache, and writes it to the client.
func (p *Public) writeCached(ctx context.Context, w http.ResponseWriter, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		respond.Error(w, err)
		return
	}
	p.cache.Set(ctx, key, body)
	respond.Raw(w, http.StatusOK, body)
}
