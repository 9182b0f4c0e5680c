// Package repository provides persistence implementations for the
// authentication and todo services against a PostgreSQL database.
package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist for the
	// requesting owner. Callers cannot distinguish an absent record from
	// one owned by another user.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a uniqueness violation, such as a duplicate
	// username on signup.
	ErrConflict = errors.New("record already exists")
)
