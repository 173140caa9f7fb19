package timesheet

import (
	"context"
	"time"

	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/user"
)

// EntryRepository provides persistence for timesheet entries. The from/to
// bounds on list queries are optional and inclusive.
type EntryRepository interface {
	Get(ctx context.Context, id string) (*Entry, error)
	ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]Entry, error)
	ListByUserAndProject(ctx context.Context, userID, projectID string, from, to *time.Time) ([]Entry, error)
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository resolves user ids for validation and the weekly view.
type UserRepository interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

// ProjectRepository resolves project ids for validation and the weekly view.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// EntryValidator validates an entry before it is written.
type EntryValidator interface {
	ValidateCreate(ctx context.Context, entry *Entry) error
	ValidateUpdate(ctx context.Context, entry *Entry) error
}

// UserValidator validates the user scope of a weekly query.
type UserValidator interface {
	Validate(ctx context.Context, userID string) error
}
