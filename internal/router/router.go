// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// newsdesk API. It organizes routes into public, authenticated, and
// role-gated groups with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/authz"
	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/token"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *token.Service, users *handlers.Users, news *handlers.News, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	authenticate := middleware.Authenticate(tokens)

	// Health check at the root, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api/users", func(r chi.Router) {
		// Public authentication routes.
		r.Post("/register", users.Register)
		r.Post("/login", users.Login)

		// Any authenticated identity.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/change-password", users.ChangePassword)
			r.Put("/{id}/subscribe", users.Subscribe)
			r.Put("/{id}/unsubscribe", users.Unsubscribe)
		})

		// Admin and super admin.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAction(authz.ActionRegisterPrivileged))
			r.Post("/register-admin", users.RegisterAdmin)
		})
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAction(authz.ActionListUsers))
			r.Get("/user-list", users.UserList)
			r.Post("/toggle-user-status", users.ToggleUserStatus)
		})

		// Super admin only.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAction(authz.ActionListAdmins))
			r.Get("/admin-list", users.AdminList)
		})
	})

	r.Route("/api/news", func(r chi.Router) {
		// Public feed routes.
		r.Get("/health", news.Health)
		r.Get("/search", news.Search)
		r.Get("/filter", news.Filter)
		r.Get("/", news.List)
		r.Get("/{id}", news.GetOne)

		// Author publishing. Ownership of update/delete is checked in the
		// handler once the article has been fetched.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAction(authz.ActionCreateArticle))
			r.Post("/", news.Create)
			r.Put("/{id}", news.Update)
			r.Delete("/{id}", news.Delete)
		})

		// Moderation.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAction(authz.ActionModerateArticle))
			r.Put("/{id}/approve", news.Approve)
		})

		// Reader engagement, any authenticated role.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/{id}/like", news.Like)
			r.Put("/{id}/comment", news.Comment)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
