// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/GophCards/internal/auth"
	"github.com/atinyakov/GophCards/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// BearerAuth returns a middleware that requires a valid bearer token.
//
// The token is verified with secret and the identity it carries is stored
// in the request context. Paths listed in public are passed through
// without a token.
func BearerAuth(secret []byte, public ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range public {
				if r.URL.Path == p {
					next.ServeHTTP(w, r)
					return
				}
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				http.Error(w, "not signed in", http.StatusUnauthorized)
				return
			}
			id, err := auth.ParseToken(strings.TrimSpace(token), secret)
			if err != nil {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// WithIdentity stores the requester identity in ctx.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// IdentityFromContext returns the requester identity, if any.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(userKey).(models.Identity)
	return id, ok
}

// GetUserIDFromContext extracts the user ID from the request context.
// Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	id, _ := IdentityFromContext(ctx)
	return id.UserID
}
