// Package token issues and verifies signed session tokens binding a
// user identity to a request.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for any token that fails
// signature, structure, or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in every session token.
type Claims struct {
	// UserID identifies the authenticated user.
	UserID int64 `json:"user_id"`
	// Username is the user's login name at issue time.
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens with a symmetric key.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New constructs a Service. secret must be non-empty; ttl is the lifetime
// of issued tokens.
func New(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue produces a signed HS256 token embedding the user identity, an
// expiration timestamp, and a unique token ID usable for revocation.
func (s *Service) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiration of a raw token string and
// returns its claims. Any failure, including a tampered payload, a wrong
// signing algorithm, or an expired timestamp, yields ErrInvalidToken.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
