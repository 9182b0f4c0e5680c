// Package service provides the business logic for authentication and todo
// management, delegating persistence to repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ameleshko/TodoKeeper/internal/models"
)

// ErrBadCredentials indicates a login attempt with a wrong password.
var ErrBadCredentials = errors.New("incorrect password")

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// CreateUser inserts a new user, returning it with its generated ID.
	// A duplicate username yields repository.ErrConflict.
	CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error)
	// GetUserByEmail fetches a user by email, or repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	// RevokeToken records a token ID as revoked until expiresAt.
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	// IsTokenRevoked reports whether a token ID has been revoked.
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenIssuer produces signed session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

// AuthService implements signup, login, and logout by composing a
// repository with a token issuer.
type AuthService struct {
	repo   AuthRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService from the given repository and
// token issuer.
func NewAuthService(repo AuthRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user with a hashed password. Returns
// repository.ErrConflict if the username is taken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, username, email, hash)
}

// Login authenticates a user by email and password and issues a session
// token. Returns repository.ErrNotFound for an unknown email and
// ErrBadCredentials for a password mismatch.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", err
	}

	ok, err := verifyPassword(password, user.PasswordHash)
	if err != nil {
		return models.User{}, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return models.User{}, "", ErrBadCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return models.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, signed, nil
}

// Logout revokes the session token with the given ID so that it no
// longer authenticates, even before its natural expiry. expiresAt bounds
// how long the revocation record needs to be retained.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.repo.RevokeToken(ctx, jti, expiresAt)
}

// IsTokenRevoked reports whether the token ID has been revoked. Used by
// the auth middleware on every authenticated request.
func (s *AuthService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.repo.IsTokenRevoked(ctx, jti)
}
