// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth verifies the shared admin token presented on admin
// requests. There are no user accounts; a single configured secret
// guards the whole admin surface.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Verifier checks presented tokens against the configured admin secret.
type Verifier struct {
	secret string
}

// NewVerifier creates a verifier for the given secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// VerifyAdminToken reports whether the presented token matches the
// configured secret. The comparison runs in constant time over SHA-256
// digests so neither content nor length leaks through timing. An empty
// token or an unconfigured secret never matches.
func (v *Verifier) VerifyAdminToken(token string) bool {
	if token == "" || v.secret == "" {
		return false
	}
	want := sha256.Sum256([]byte(v.secret))
	got := sha256.Sum256([]byte(token))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}
