package service

import (
	"context"

	"github.com/ameleshko/TodoKeeper/internal/models"
)

// TodoRepository defines the persistence operations required by the todo
// service. Every operation except creation is owner-scoped: the query
// conjoins the record ID with userID, so another user's record behaves
// exactly like a missing one.
type TodoRepository interface {
	CreateTodo(ctx context.Context, userID int64, content string) (models.Todo, error)
	GetTodoByID(ctx context.Context, userID, id int64) (models.Todo, error)
	ListTodosByUser(ctx context.Context, userID int64) ([]models.Todo, error)
	UpdateTodoContent(ctx context.Context, userID, id int64, content string) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id int64) error
	MarkTodoDone(ctx context.Context, userID, id int64) (models.DoneTodo, error)
	CreateDoneTodo(ctx context.Context, userID int64, content string) (models.DoneTodo, error)
	ListDoneTodosByUser(ctx context.Context, userID int64) ([]models.DoneTodo, error)
}

// TodoService implements todo operations by delegating to a TodoRepository.
type TodoService struct {
	repo TodoRepository
}

// NewTodoService constructs a TodoService using the provided repository.
func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// Create adds a todo owned by userID, regardless of any owner supplied by
// the client.
func (s *TodoService) Create(ctx context.Context, userID int64, content string) (models.Todo, error) {
	return s.repo.CreateTodo(ctx, userID, content)
}

// Get returns a single owned todo, or repository.ErrNotFound.
func (s *TodoService) Get(ctx context.Context, userID, id int64) (models.Todo, error) {
	return s.repo.GetTodoByID(ctx, userID, id)
}

// List returns all todos owned by userID.
func (s *TodoService) List(ctx context.Context, userID int64) ([]models.Todo, error) {
	return s.repo.ListTodosByUser(ctx, userID)
}

// Update replaces the content of an owned todo, or repository.ErrNotFound.
func (s *TodoService) Update(ctx context.Context, userID, id int64, content string) (models.Todo, error) {
	return s.repo.UpdateTodoContent(ctx, userID, id, content)
}

// Delete removes an owned todo, or repository.ErrNotFound.
func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteTodo(ctx, userID, id)
}

// MarkDone archives an owned todo into the done list in one atomic step.
func (s *TodoService) MarkDone(ctx context.Context, userID, id int64) (models.DoneTodo, error) {
	return s.repo.MarkTodoDone(ctx, userID, id)
}

// CreateDone adds a done todo owned by userID directly.
func (s *TodoService) CreateDone(ctx context.Context, userID int64, content string) (models.DoneTodo, error) {
	return s.repo.CreateDoneTodo(ctx, userID, content)
}

// ListDone returns all done todos owned by userID.
func (s *TodoService) ListDone(ctx context.Context, userID int64) ([]models.DoneTodo, error) {
	return s.repo.ListDoneTodosByUser(ctx, userID)
}
