package user

import "errors"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmptyUserID indicates a user id argument was the empty sentinel.
	ErrEmptyUserID = errors.New("user id must not be empty")
)
