// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"newsdesk/internal/apierr"
	"newsdesk/internal/authz"
	"newsdesk/internal/response"
	"newsdesk/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// claimsKey is the context key for the verified token claims.
	claimsKey contextKey = "claims"
)

// Authenticate verifies the bearer token and threads the immutable claims
// value into the request context. Requests without a valid token are
// rejected with 401; there is no anonymous pass-through.
func Authenticate(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.Err(w, apierr.Authentication("Token is required"))
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				response.Err(w, apierr.Authentication("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAction rejects with 403 unless the authenticated role may perform
// the given action. Ownership-gated actions are additionally checked in
// the handler once the target resource has been fetched.
// Must be applied after Authenticate.
func RequireAction(action authz.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromCtx(r.Context())
			if claims == nil || !authz.RoleAllowed(claims.Role, action) {
				response.Err(w, apierr.Authorization("Forbidden: You do not have permission to perform this action"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromCtx extracts the verified claims from the request context.
// Returns nil if the request is not authenticated.
func ClaimsFromCtx(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey).(*token.Claims)
	return claims
}

// WithClaims returns a context carrying the given claims. Used by tests
// to call handlers without running the middleware chain.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
