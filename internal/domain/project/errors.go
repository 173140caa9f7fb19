package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrEmptyProjectID indicates a project id argument was the empty sentinel.
	ErrEmptyProjectID = errors.New("project id must not be empty")
)
