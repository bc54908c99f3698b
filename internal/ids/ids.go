// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ids generates time-ordered unique identifiers for posts.
package ids

import "github.com/google/uuid"

// New returns a fresh UUIDv7 as a string. The identifiers are
// millisecond time-ordered, so sorting posts lexicographically by ID
// matches creation order. Stores rely on this to break ties between
// posts published at the same instant.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}
