// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"quillpress/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the authenticated identity.
	IdentityKey contextKey = "identity"

	// tokenErrorKey holds the reason a supplied token was rejected.
	tokenErrorKey contextKey = "token_error"
)

// TokenVerifier resolves a bearer token into an identity. auth.Service
// implements it.
type TokenVerifier interface {
	VerifyToken(token string) (*models.Identity, error)
}

// Authenticate resolves an optional "Authorization: Bearer <token>" header
// and stores the identity in the request context. It never rejects a
// request: public reads still work anonymously, and RequireAuth enforces
// authentication on protected routes.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			token, ok := bearerToken(header)
			if !ok {
				ctx = context.WithValue(ctx, tokenErrorKey, "invalid token")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			identity, err := verifier.VerifyToken(token)
			if err != nil {
				msg := "invalid token"
				var domainErr *models.Error
				if errors.As(err, &domainErr) && domainErr.Kind == models.KindInvalidToken {
					msg = domainErr.Message
				}
				ctx = context.WithValue(ctx, tokenErrorKey, msg)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

// RequireAuth rejects requests without a valid identity with a 401 JSON
// error. Must be applied after Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			msg, _ := r.Context().Value(tokenErrorKey).(string)
			if msg == "" {
				msg = "no token supplied"
			}
			writeError(w, http.StatusUnauthorized, models.KindInvalidToken, msg)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the identity from the request context.
// Returns nil if the request is anonymous.
func IdentityFromCtx(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(IdentityKey).(*models.Identity)
	return id
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
