package repositories

import "errors"

var (
	// ErrNotFound is returned by mutations that matched no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique field collides.
	ErrDuplicate = errors.New("duplicate field value")
)
