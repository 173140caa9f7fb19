package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrEmptyID is returned when an identity argument is the empty sentinel
	ErrEmptyID = errors.New("id must not be empty")

	// ErrDuplicateID is returned when a create collides with an occupied id
	ErrDuplicateID = errors.New("id already exists")
)
