// Package router sets up all HTTP routes and middleware chains for the
// InkPress API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"github.com/go-chi/chi/v5"

	"inkpress/internal/auth"
	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(verifier *auth.Verifier, corsOrigin string, admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(corsOrigin))

	// Public routes. No token required.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/health", public.Health)
		r.Get("/blogs", public.ListPosts)
		r.Get("/blogs/latest", public.Latest)
		r.Get("/blogs/{id}", public.GetPost)
		r.Get("/blogs/slug/{slug}", public.GetPostBySlug)
		r.Get("/categories", public.ListCategories)
	})

	// Admin routes. Every endpoint, health included, requires the
	// bearer token.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(verifier))

		r.Get("/health", admin.Health)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", admin.ListPosts)
			r.Post("/", admin.CreatePost)
			r.Get("/{id}", admin.GetPost)
			r.Put("/{id}", admin.UpdatePost)
			r.Delete("/{id}", admin.DeletePost)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.ListCategories)
			r.Post("/", admin.CreateCategory)
			r.Post("/cleanup", admin.CleanupCategories)
			r.Delete("/{name}", admin.DeleteCategory)
		})
	})

	return r
}
