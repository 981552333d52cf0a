package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// Unique constraint violation (duplicate email, second payment for an
	// order, reused transaction id).
	ErrConflict = errors.New("conflict")
)
