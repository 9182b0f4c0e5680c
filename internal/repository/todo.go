package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ameleshko/TodoKeeper/internal/models"
)

// PostgresTodoRepository implements todo and done-todo persistence against
// a PostgreSQL database. Every query except creation conjoins the owning
// user's ID, so records belonging to other users are indistinguishable
// from absent ones.
type PostgresTodoRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresTodoRepository creates a new PostgresTodoRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresTodoRepository(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{DB: db}
}

// CreateTodo inserts a todo owned by userID and returns it with its
// generated ID.
func (r *PostgresTodoRepository) CreateTodo(ctx context.Context, userID int64, content string) (models.Todo, error) {
	todo := models.Todo{Content: content, UserID: userID}
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO todos (content, user_id) VALUES ($1, $2) RETURNING id`,
		content, userID,
	).Scan(&todo.ID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// GetTodoByID fetches a single todo by ID for the given owner. Returns
// ErrNotFound if the row is absent or owned by someone else.
func (r *PostgresTodoRepository) GetTodoByID(ctx context.Context, userID, id int64) (models.Todo, error) {
	var todo models.Todo
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, content, user_id FROM todos WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&todo.ID, &todo.Content, &todo.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// ListTodosByUser fetches all todos owned by userID.
func (r *PostgresTodoRepository) ListTodosByUser(ctx context.Context, userID int64) ([]models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, content, user_id FROM todos WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Content, &todo.UserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// UpdateTodoContent replaces the content of an owned todo and returns the
// updated record. Returns ErrNotFound if the todo is absent or not owned
// by userID.
func (r *PostgresTodoRepository) UpdateTodoContent(ctx context.Context, userID, id int64, content string) (models.Todo, error) {
	var todo models.Todo
	err := r.DB.QueryRowContext(ctx, `
		UPDATE todos SET content = $1 WHERE id = $2 AND user_id = $3
		RETURNING id, content, user_id
	`, content, id, userID).Scan(&todo.ID, &todo.Content, &todo.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// DeleteTodo removes an owned todo. Returns ErrNotFound if the todo is
// absent or not owned by userID.
func (r *PostgresTodoRepository) DeleteTodo(ctx context.Context, userID, id int64) error {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkTodoDone atomically moves an owned todo into the done list: it
// inserts a done todo with the same content and owner and deletes the
// original row in a single transaction. Returns ErrNotFound if the todo
// is absent or not owned by userID; on any failure neither table changes.
func (r *PostgresTodoRepository) MarkTodoDone(ctx context.Context, userID, id int64) (models.DoneTodo, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.DoneTodo{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var content string
	err = tx.QueryRowContext(ctx, `
		SELECT content FROM todos WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, id, userID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DoneTodo{}, ErrNotFound
	}
	if err != nil {
		return models.DoneTodo{}, fmt.Errorf("select todo: %w", err)
	}

	done := models.DoneTodo{Content: content, UserID: userID}
	err = tx.QueryRowContext(
		ctx,
		`INSERT INTO done_todos (content, user_id) VALUES ($1, $2) RETURNING id`,
		content, userID,
	).Scan(&done.ID)
	if err != nil {
		return models.DoneTodo{}, fmt.Errorf("insert done todo: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return models.DoneTodo{}, fmt.Errorf("delete todo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.DoneTodo{}, fmt.Errorf("commit: %w", err)
	}
	return done, nil
}

// CreateDoneTodo inserts a done todo owned by userID and returns it with
// its generated ID.
func (r *PostgresTodoRepository) CreateDoneTodo(ctx context.Context, userID int64, content string) (models.DoneTodo, error) {
	done := models.DoneTodo{Content: content, UserID: userID}
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO done_todos (content, user_id) VALUES ($1, $2) RETURNING id`,
		content, userID,
	).Scan(&done.ID)
	if err != nil {
		return models.DoneTodo{}, fmt.Errorf("create done todo: %w", err)
	}
	return done, nil
}

// ListDoneTodosByUser fetches all done todos owned by userID.
func (r *PostgresTodoRepository) ListDoneTodosByUser(ctx context.Context, userID int64) ([]models.DoneTodo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, content, user_id FROM done_todos WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list done todos: %w", err)
	}
	defer rows.Close()

	dones := []models.DoneTodo{}
	for rows.Next() {
		var done models.DoneTodo
		if err := rows.Scan(&done.ID, &done.Content, &done.UserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		dones = append(dones, done)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list done todos: %w", err)
	}
	return dones, nil
}
