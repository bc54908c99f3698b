// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// quoteChars are dropped outright so "Don't Stop" becomes "dont-stop",
	// not "don-t-stop".
	quoteChars = regexp.MustCompile("['’`\"]+")
	// nonAlphanumeric matches any run of characters that is neither a
	// letter nor a digit. Each run collapses to a single hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// foldDiacritics decomposes accented characters and strips the combining
// marks, so "Café" folds to "Cafe" before the ASCII pass.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	result := strings.ToLower(strings.TrimSpace(folded))
	result = quoteChars.ReplaceAllString(result, "")
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
