// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the memory store; response-cache behavior is
// covered separately against a real Redis and skipped when unreachable.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/engine"
	"inkpress/internal/models"
	"inkpress/internal/sanitize"
	"inkpress/internal/store"
)

// testEnv holds the dependencies for handler tests.
type testEnv struct {
	Store  *store.MemoryStore
	Engine *engine.Engine
	Admin  *Admin
	Public *Public
}

// newTestEnv creates both handler groups over a fresh memory store,
// without a response cache.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	eng := engine.New(st, sanitize.New())
	return &testEnv{
		Store:  st,
		Engine: eng,
		Admin:  NewAdmin(eng, st, nil),
		Public: NewPublic(st, nil),
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request carrying a JSON body.
func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeResponse unmarshals a recorded JSON response body.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return body
}

// assertError checks the status code and {error, message} envelope of a
// failed request.
func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, kind, message string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	body := decodeResponse(t, rec)
	if body["error"] != kind {
		t.Errorf("error: got %v, want %q", body["error"], kind)
	}
	if body["message"] != message {
		t.Errorf("message: got %v, want %q", body["message"], message)
	}
}

func strPtr(s string) *string { return &s }

// seedPost creates a post through the engine and returns it.
func seedPost(t *testing.T, env *testEnv, title, category, status string) *models.Post {
	t.Helper()

	post, err := env.Engine.CreatePost(context.Background(), engine.CreatePostInput{
		Title:           title,
		ContentRaw:      `{"ops":[{"insert":"seed"}]}`,
		ContentRendered: "<p>" + title + " body</p>",
		Category:        category,
		Status:          status,
	})
	if err != nil {
		t.Fatalf("seed post %q: %v", title, err)
	}
	return post
}
