package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"kidquest/internal/apperr"
	"kidquest/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const ParentContextKey ContextKey = "parentID"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.TokenManager
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenManager, limiter *security.RateLimiter) *Middleware {
	return &Middleware{tokens: tokens, limiter: limiter}
}

// RequireAuth verifies the Bearer token and stores the authenticated
// parent ID in the request context. Routes carrying a {parentId} path
// segment are additionally scoped to that parent.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, r, apperr.Unauthorized("missing bearer token"))
			return
		}

		parentID, err := m.tokens.Verify(token)
		if err != nil {
			respondError(w, r, apperr.Unauthorized("invalid or expired token"))
			return
		}

		// A parent may only operate on its own aggregate.
		if pathParent := r.PathValue("parentId"); pathParent != "" && pathParent != parentID {
			respondError(w, r, apperr.Unauthorized("token does not match parent"))
			return
		}

		ctx := context.WithValue(r.Context(), ParentContextKey, parentID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects requests from clients that exceed the configured rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.ClientIP(r)
		if !m.limiter.Allow(ip) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ParentIDFromContext retrieves the authenticated parent ID
func ParentIDFromContext(ctx context.Context) string {
	parentID, _ := ctx.Value(ParentContextKey).(string)
	return parentID
}
