// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sort"
	"sync"

	"inkpress/internal/models"
)

// MemoryStore keeps all records in process memory behind a mutex. It backs
// unit tests and local development without external services. Records are
// copied on the way in and out so callers never share memory with the
// store.
type MemoryStore struct {
	mu         sync.RWMutex
	posts      map[string]models.Post
	categories map[string]models.Category
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:      make(map[string]models.Post),
		categories: make(map[string]models.Category),
	}
}

func (s *MemoryStore) PutPost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = clonePost(*p)
	return nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	c := clonePost(p)
	return &c, nil
}

func (s *MemoryStore) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) QueryByStatus(ctx context.Context, status models.PostStatus, limit int, newestFirst bool) ([]models.Post, error) {
	s.mu.RLock()
	var out []models.Post
	for _, p := range s.posts {
		if p.Status == status && p.PublishedAt != nil {
			out = append(out, clonePost(p))
		}
	}
	s.mu.RUnlock()

	sortByPublished(out, newestFirst)
	return truncate(out, limit), nil
}

func (s *MemoryStore) QueryByCategory(ctx context.Context, category string, limit int, newestFirst bool, statusFilter models.PostStatus) ([]models.Post, error) {
	s.mu.RLock()
	var out []models.Post
	for _, p := range s.posts {
		if p.CategoryName() != category || p.PublishedAt == nil {
			continue
		}
		if statusFilter != "" && p.Status != statusFilter {
			continue
		}
		out = append(out, clonePost(p))
	}
	s.mu.RUnlock()

	sortByPublished(out, newestFirst)
	return truncate(out, limit), nil
}

// ScanPosts returns posts newest-first by creation time.
func (s *MemoryStore) ScanPosts(ctx context.Context, limit int) ([]models.Post, error) {
	s.mu.RLock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, limit), nil
}

func (s *MemoryStore) PutCategory(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.Name] = cloneCategory(*c)
	return nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, name string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[name]
	if !ok {
		return nil, nil
	}
	out := cloneCategory(c)
	return &out, nil
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, name)
	return nil
}

// ScanCategories returns categories sorted by name.
func (s *MemoryStore) ScanCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, cloneCategory(c))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// clonePost copies a post including its pointer fields, so mutations on
// one side never leak to the other.
func clonePost(p models.Post) models.Post {
	if p.Category != nil {
		c := *p.Category
		p.Category = &c
	}
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		p.PublishedAt = &t
	}
	return p
}

func cloneCategory(c models.Category) models.Category {
	if c.Description != nil {
		d := *c.Description
		c.Description = &d
	}
	return c
}

// sortByPublished orders posts by published timestamp, breaking ties on
// the time-ordered id. Every post passed in carries a timestamp because
// the queries filter unpublished posts out first.
func sortByPublished(posts []models.Post, newestFirst bool) {
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i].PublishedAt, posts[j].PublishedAt
		if a.Equal(*b) {
			if newestFirst {
				return posts[i].ID > posts[j].ID
			}
			return posts[i].ID < posts[j].ID
		}
		if newestFirst {
			return a.After(*b)
		}
		return a.Before(*b)
	})
}

func truncate(posts []models.Post, limit int) []models.Post {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}
