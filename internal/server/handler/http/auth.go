package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ameleshko/TodoKeeper/internal/middleware"
	"github.com/ameleshko/TodoKeeper/internal/models"
	"github.com/ameleshko/TodoKeeper/internal/repository"
	"github.com/ameleshko/TodoKeeper/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, username, email, password string) (models.User, error)
	// Login authenticates by email and password and issues a session token.
	Login(ctx context.Context, email, password string) (models.User, string, error)
	// Logout revokes the token with the given ID until expiresAt.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// AuthHandler handles HTTP requests for signup, login, and logout.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log records internal failures.
	Log *zap.Logger
}

// SignupRequest represents the JSON payload for user registration.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /signup. It expects a JSON body with non-empty
// username, email, and password. A taken username yields 400.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if _, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			http.Error(w, "username already exists", http.StatusBadRequest)
			return
		}
		h.Log.Error("signup failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, message{Message: "user created successfully"})
}

// Login handles POST /login. An unknown email yields 404, a wrong
// password 400. On success it returns the user and a signed session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, signed, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, service.ErrBadCredentials):
			http.Error(w, "incorrect password", http.StatusBadRequest)
		default:
			h.Log.Error("login failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": signed,
	})
}

// Logout handles POST /logout. It revokes the presented token so that it
// no longer authenticates.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.AuthService.Logout(r.Context(), user.TokenID, user.ExpiresAt); err != nil {
		h.Log.Error("logout failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, message{Message: "logged out"})
}
