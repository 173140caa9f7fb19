package timesheet

import "errors"

var (
	// ErrNilEntry indicates a required entry argument was nil.
	ErrNilEntry = errors.New("timesheet entry must not be nil")
	// ErrEmptyEntryID indicates an entry id argument was the empty sentinel.
	ErrEmptyEntryID = errors.New("timesheet entry id must not be empty")
	// ErrZeroWeekCommencing indicates the week-commencing date was not set.
	ErrZeroWeekCommencing = errors.New("week commencing date must be set")
)
