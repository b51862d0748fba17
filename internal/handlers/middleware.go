package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/security"
	"kinderpost/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserContextKey holds the authenticated *models.User
	UserContextKey ContextKey = "user"
	// ActorContextKey holds the authz.Actor derived from the user
	ActorContextKey ContextKey = "actor"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService  *service.AuthService
	actorService *service.ActorService
	limiter      *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, actorService *service.ActorService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService:  authService,
		actorService: actorService,
		limiter:      limiter,
	}
}

// RequireAuth resolves the bearer token, loads the actor and stores both in
// the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := m.authService.Authenticate(token)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		actor, err := m.actorService.Load(user)
		if err != nil {
			slog.Error("failed to load actor", "user_id", user.ID, "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, ActorContextKey, actor)
		next(w, r.WithContext(ctx))
	}
}

// RequireSuperadmin rejects any actor that is not the superadmin
func (m *Middleware) RequireSuperadmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if actorFrom(r).Role != models.RoleSuperadmin {
			ErrorResponse(w, http.StatusForbidden, "access denied")
			return
		}
		next(w, r)
	})
}

// RateLimit rejects clients that exceed the request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			ErrorResponse(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// actorFrom fetches the actor stored by RequireAuth
func actorFrom(r *http.Request) authz.Actor {
	actor, _ := r.Context().Value(ActorContextKey).(authz.Actor)
	return actor
}

// userFrom fetches the user stored by RequireAuth
func userFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserContextKey).(*models.User)
	return user
}

// Logging wraps a handler with structured request logging
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", security.ClientIP(r),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
