// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"funews/internal/auth"
	"funews/internal/metrics"
	"funews/internal/models"
	"funews/internal/respond"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// ClaimsKey is the context key for the validated token claims.
	ClaimsKey contextKey = "claims"
)

const (
	msgInvalidToken = "Invalid token"
	msgForbidden    = "You do not have permission to perform this action."
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RevocationChecker reports whether a token id was signed out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticate parses the bearer token, if any, and stores its claims in the
// request context. Downstream handlers can access them via ClaimsFromCtx().
// This middleware does NOT enforce authentication: a missing, invalid or
// revoked token simply leaves the request anonymous.
func Authenticate(tokens TokenValidator, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if revoked != nil {
				gone, err := revoked.IsRevoked(r.Context(), claims.TokenID())
				if err != nil {
					// Fail closed: an unverifiable token is treated as absent.
					slog.Error("revocation check failed", "error", err, "request_id", RequestIDFromCtx(r.Context()))
					next.ServeHTTP(w, r)
					return
				}
				if gone {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without valid claims with 401.
// Must be applied after Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFromCtx(r.Context()) == nil {
			respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles returns 403 unless the caller holds one of the given roles.
// An anonymous caller gets 401. Role names match exactly.
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromCtx(r.Context())
			if claims == nil {
				respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}
			for _, role := range roles {
				if models.Role(claims.Role) == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			metrics.RecordForbidden(claims.Role, r.Method)
			respond.Message(w, http.StatusForbidden, msgForbidden)
		})
	}
}

// ClaimsFromCtx extracts the token claims from the request context.
// Returns nil if the request is anonymous.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}

// WithClaims returns a copy of ctx carrying claims. Used by tests and by
// callers that authenticate outside HTTP.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// bearerToken returns the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
