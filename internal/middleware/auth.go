// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"

	"inkpress/internal/apperr"
	"inkpress/internal/auth"
	"inkpress/internal/respond"
)

// RequireAdmin gates a route behind the shared admin token. The token
// travels in the Authorization header as a bearer credential; a request
// without one is rejected before the token is looked at.
func RequireAdmin(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.Error(w, apperr.Auth("Missing or invalid authorization header"))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if !verifier.VerifyAdminToken(token) {
				respond.Error(w, apperr.Auth("Invalid admin token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
