// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ameleshko/TodoKeeper/internal/token"
)

type ctxKey string

const userKey ctxKey = "user"

// User is the authenticated identity bound to the request context by Auth.
type User struct {
	// ID identifies the authenticated user.
	ID int64
	// Username is the user's login name from the token.
	Username string
	// TokenID is the jti of the presented token, used for revocation.
	TokenID string
	// ExpiresAt is the token's expiration timestamp.
	ExpiresAt time.Time
}

// TokenVerifier validates raw bearer tokens into claims.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// RevocationChecker reports whether a token ID has been revoked.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth returns a middleware that enforces bearer-token authentication.
//
// It extracts the credential from the Authorization header, verifies its
// signature and expiry, and rejects tokens whose ID has been revoked. On
// success it binds the authenticated User into the request context for
// downstream handlers. Every request is checked independently; no session
// state is cached server-side.
func Auth(verifier TokenVerifier, revocations RevocationChecker, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "authorization header required", http.StatusUnauthorized)
				return
			}

			scheme, raw, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || raw == "" {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			revoked, err := revocations.IsTokenRevoked(r.Context(), claims.ID)
			if err != nil {
				log.Error("revocation check failed", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if revoked {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			user := User{
				ID:       claims.UserID,
				Username: claims.Username,
				TokenID:  claims.ID,
			}
			if claims.ExpiresAt != nil {
				user.ExpiresAt = claims.ExpiresAt.Time
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext extracts the authenticated user from the request
// context. The second return value is false if no user is bound.
func GetUserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}
