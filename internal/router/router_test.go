// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration and the
// middleware chains in front of each route group.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkpress/internal/auth"
	"inkpress/internal/engine"
	"inkpress/internal/handlers"
	"inkpress/internal/sanitize"
	"inkpress/internal/store"
)

const testToken = "router-test-token"

func testRouter() http.Handler {
	st := store.NewMemoryStore()
	eng := engine.New(st, sanitize.New())
	admin := handlers.NewAdmin(eng, st, nil)
	public := handlers.NewPublic(st, nil)
	return New(auth.NewVerifier(testToken), "*", admin, public)
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	r := testRouter()

	paths := []string{
		"/api/public/health",
		"/api/public/blogs",
		"/api/public/categories",
	}
	for _, path := range paths {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: got %d, want 200", path, rec.Code)
		}
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest("GET", "/api/admin/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without token: got %d, want 401", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/admin/health", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("with token: got %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health body: %v", err)
	}
	if body["status"] != "healthy" || body["admin"] != true {
		t.Errorf("admin health body: got %v", body)
	}
}

func TestCORSHeadersOnAPIRoutes(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest("GET", "/api/public/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin: got %q, want *", got)
	}

	// Preflight never reaches a handler, so it passes without a token
	// even on admin paths.
	req = httptest.NewRequest(http.MethodOptions, "/api/admin/blogs", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight: got %d, want 204", rec.Code)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest("GET", "/api/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route: got %d, want 404", rec.Code)
	}
}
