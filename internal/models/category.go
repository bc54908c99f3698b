// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Category is a named tag carrying a denormalized count of the published
// posts currently assigned to it. Name is the identity key (case-sensitive,
// compared exactly). PostCount is maintained incrementally by the
// consistency engine and clamped at zero; it is never recomputed from the
// post set, so it can drift after partial failures.
type Category struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PostCount   int     `json:"post_count"`
}

// HasValidName reports whether the category name is non-empty after
// trimming. Categories failing this check are the target of the cleanup
// sweep.
func (c *Category) HasValidName() bool {
	return strings.TrimSpace(c.Name) != ""
}
