// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostStatus represents the publishing state of a blog post. Statuses are
// stored uppercase on the wire ("DRAFT", "PUBLISHED").
type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"
)

// Post is a single blog entry. ContentRaw holds the editor's source of
// truth (e.g. a Quill Delta document); ContentRendered holds the sanitized
// HTML derived from it and is never stored unsanitized.
type Post struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Category        *string    `json:"category"`
	Status          PostStatus `json:"status"`
	ContentRaw      string     `json:"content_raw"`
	ContentRendered string     `json:"content_rendered"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// PublishedAt is stamped the first time the post transitions into
	// PUBLISHED and is never cleared or overwritten afterwards, even
	// across unpublish/republish cycles.
	PublishedAt *time.Time `json:"published_at"`
}

// IsPublished returns true if the post is in PUBLISHED status.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// CategoryName returns the post's category, or "" when none is assigned.
func (p *Post) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// PostSummary is the list-endpoint projection of a Post: everything except
// the content payloads.
type PostSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Category    *string    `json:"category"`
	Status      PostStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// Summary returns the content-free projection of the post used by list
// endpoints.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
	}
}

// Summaries converts a slice of posts into their list projections.
func Summaries(posts []Post) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].Summary())
	}
	return out
}
