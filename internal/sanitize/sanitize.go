// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize cleans untrusted rich-text HTML against an allow-list
// policy and derives plain-text excerpts from it. The allow-lists are fixed
// at construction and a Sanitizer is safe for concurrent use.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultExcerptLength is the maximum rune count for an excerpt derived
// from rendered content.
const DefaultExcerptLength = 200

// allowedTags is the set of structural and formatting elements retained in
// rendered blog content. Everything else is unwrapped, keeping its text.
var allowedTags = []string{
	"p", "br", "strong", "em", "u", "s", "sub", "sup",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li",
	"blockquote", "pre", "code",
	"a", "img",
	"span", "div",
	"table", "thead", "tbody", "tr", "th", "td",
}

// allowedStyles is the set of CSS properties permitted inside style
// attributes. Properties outside this list are dropped.
var allowedStyles = []string{
	"color", "background-color", "font-size", "font-weight",
	"font-style", "text-decoration", "text-align",
}

// Sanitizer holds the configured cleaning policies. The content policy
// keeps the editor's formatting vocabulary; the text policy strips every
// tag and is used for excerpts.
type Sanitizer struct {
	content *bluemonday.Policy
	text    *bluemonday.Policy
}

// New builds a Sanitizer with the blog content allow-lists.
func New() *Sanitizer {
	content := bluemonday.NewPolicy()
	content.AllowElements(allowedTags...)
	// Restricts href and src to http, https, and mailto. A link whose URL
	// fails the check loses the attribute and is unwrapped.
	content.AllowStandardURLs()
	content.AllowAttrs("class", "style").Globally()
	content.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	content.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	content.AllowStyles(allowedStyles...).Globally()
	content.RequireNoFollowOnLinks(true)

	return &Sanitizer{
		content: content,
		text:    bluemonday.StrictPolicy(),
	}
}

// Clean sanitizes untrusted HTML for storage and rendering. Disallowed
// tags are unwrapped rather than escaped, disallowed attributes and CSS
// properties are dropped, and bare URLs in text are converted to nofollow
// links (except inside pre and code blocks). Cleaning already-clean HTML
// returns it unchanged, so stored content can be re-cleaned safely.
func (s *Sanitizer) Clean(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := s.content.Sanitize(raw)
	linked, err := linkify(cleaned)
	if err != nil {
		// The fragment parser accepts almost anything; if it does fail,
		// the cleaned HTML is already safe to serve without links.
		return cleaned
	}
	return linked
}

// StripTags removes all HTML tags and returns the remaining text content.
func (s *Sanitizer) StripTags(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	return s.text.Sanitize(htmlContent)
}

// Excerpt strips htmlContent to plain text and truncates it to at most
// maxLen characters at a word boundary, appending an ellipsis when
// truncation happened. If the text contains no space before the limit it
// is cut at the raw length instead.
func (s *Sanitizer) Excerpt(htmlContent string, maxLen int) string {
	plain := s.StripTags(htmlContent)
	runes := []rune(plain)
	if len(runes) <= maxLen {
		return plain
	}
	truncated := string(runes[:maxLen])
	if i := strings.LastIndex(truncated, " "); i >= 0 {
		truncated = truncated[:i]
	}
	return truncated + "..."
}
