package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openclique/feedline/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware enforces bearer-token authentication for protected routes.
type AuthMiddleware struct {
	auth auth.Service
}

func NewAuthMiddleware(auth auth.Service) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth ensures the caller presents a valid bearer token. On success
// the token's identity is injected into the request context; otherwise the
// request is rejected with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		identity, err := m.auth.Verify(token)
		if err != nil {
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity returns the authenticated identity attached by RequireAuth.
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(auth.Identity)
	return identity, ok
}

// WithIdentity injects an identity into a request context; used by handler
// tests to simulate the middleware.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
