package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ameleshko/TodoKeeper/internal/middleware"
	"github.com/ameleshko/TodoKeeper/internal/models"
	"github.com/ameleshko/TodoKeeper/internal/repository"
)

// TodoService defines the interface for todo operations required by the
// TodoHandler. All operations are scoped to the authenticated user.
type TodoService interface {
	Create(ctx context.Context, userID int64, content string) (models.Todo, error)
	Get(ctx context.Context, userID, id int64) (models.Todo, error)
	List(ctx context.Context, userID int64) ([]models.Todo, error)
	Update(ctx context.Context, userID, id int64, content string) (models.Todo, error)
	Delete(ctx context.Context, userID, id int64) error
	MarkDone(ctx context.Context, userID, id int64) (models.DoneTodo, error)
	CreateDone(ctx context.Context, userID int64, content string) (models.DoneTodo, error)
	ListDone(ctx context.Context, userID int64) ([]models.DoneTodo, error)
}

// TodoHandler handles HTTP requests for todo and done-todo management.
type TodoHandler struct {
	// TodoService performs the underlying todo operations.
	TodoService TodoService
	// Log records internal failures.
	Log *zap.Logger
}

// TodoRequest represents the JSON payload for creating or updating a
// todo. Any user_id supplied by the client is ignored; ownership always
// comes from the authenticated identity.
type TodoRequest struct {
	Content string `json:"content"`
}

// currentUser extracts the authenticated user or writes a 401.
func (h *TodoHandler) currentUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
	return user, ok
}

// todoID parses the {id} URL parameter or writes a 400.
func (h *TodoHandler) todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid todo id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeServiceError maps repository sentinels to status codes; anything
// else is logged and reported as a 500 without internal detail.
func (h *TodoHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "todo not found", http.StatusNotFound)
		return
	}
	h.Log.Error("todo operation failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// List handles GET /todos/. It returns all todos owned by the caller.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	todos, err := h.TodoService.List(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// Get handles GET /todos/{id}/. It returns one owned todo or 404.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.Get(r.Context(), user.ID, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// Create handles POST /todos/. The new todo is always owned by the
// caller, regardless of any user_id in the request body.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	todo, err := h.TodoService.Create(r.Context(), user.ID, req.Content)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// Update handles PUT /todos/{id}/. It replaces the content of an owned
// todo and returns the updated record, or 404.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	todo, err := h.TodoService.Update(r.Context(), user.ID, id, req.Content)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// Delete handles DELETE /todos/{id}/. It removes an owned todo or 404.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	if err := h.TodoService.Delete(r.Context(), user.ID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "todo deleted successfully"})
}

// MarkDone handles PUT /todos/{id}/done/. It atomically moves an owned
// todo into the done list and returns the new done record, or 404.
func (h *TodoHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	done, err := h.TodoService.MarkDone(r.Context(), user.ID, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, done)
}

// ListDone handles GET /done_todos/. It returns all done todos owned by
// the caller; with none, the response is an empty list.
func (h *TodoHandler) ListDone(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	dones, err := h.TodoService.ListDone(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dones)
}

// CreateDone handles POST /done_todos/. The new done todo is always owned
// by the caller.
func (h *TodoHandler) CreateDone(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	done, err := h.TodoService.CreateDone(r.Context(), user.ID, req.Content)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, done)
}
