// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// QuillPress API. Reads are public; writes sit behind RequireAuth.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/handlers"
	"quillpress/internal/middleware"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

// Deps are the collaborators the router wires together.
type Deps struct {
	Verifier   middleware.TokenVerifier
	Observer   middleware.RequestObserver
	Metrics    http.Handler // serves /metrics; nil disables the route
	Health     http.Handler
	Users      *handlers.Users
	Posts      *handlers.Posts
	Categories *handlers.Categories
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	if d.Observer != nil {
		r.Use(middleware.Metrics(d.Observer))
	}
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Authenticate(d.Verifier))
	r.Use(middleware.Logger)
	r.Use(middleware.LimitBody(MaxBodyBytes))

	// Operational endpoints, no auth.
	r.Method(http.MethodGet, "/health", d.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", d.Users.Register)
			r.Post("/login", d.Users.Login)
			r.With(middleware.RequireAuth).Get("/me", d.Users.Me)
		})

		r.Route("/posts", func(r chi.Router) {
			// Public reads; a valid token additionally reveals the
			// requester's drafts.
			r.Get("/", d.Posts.List)
			r.Get("/search", d.Posts.Search)
			r.Get("/{id}", d.Posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", d.Posts.Create)
				r.Put("/{id}", d.Posts.Update)
				r.Delete("/{id}", d.Posts.Delete)
				r.Post("/{id}/comments", d.Posts.AddComment)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Categories.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", d.Categories.Create)
				r.Put("/{id}", d.Categories.Update)
				r.Delete("/{id}", d.Categories.Delete)
			})
		})
	})

	return r
}
