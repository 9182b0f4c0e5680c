// Package models defines the core data structures for users and todo items.
package models

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// Email is the address the user logs in with.
	Email string `json:"email"`
	// PasswordHash is the encoded argon2id hash of the user's password.
	// Never serialized in responses.
	PasswordHash string `json:"-"`
}

// Todo is a pending todo item owned by a single user.
type Todo struct {
	// ID is the unique identifier for the todo.
	ID int64 `json:"id"`
	// Content is the todo text.
	Content string `json:"content"`
	// UserID references the owning user.
	UserID int64 `json:"user_id"`
}

// DoneTodo is a completed todo item, produced by archiving a Todo
// or created directly.
type DoneTodo struct {
	// ID is the unique identifier for the done todo.
	ID int64 `json:"id"`
	// Content is the todo text carried over on archival.
	Content string `json:"content"`
	// UserID references the owning user.
	UserID int64 `json:"user_id"`
}
