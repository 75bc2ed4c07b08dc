package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a value cannot be stored or read back
	ErrInvalidInput = errors.New("invalid input")
)
