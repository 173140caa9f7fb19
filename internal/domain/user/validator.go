package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/tallyhq/tally/internal/domain/validation"
	"github.com/tallyhq/tally/internal/repository"
)

const fieldUserID = "UserID"

// Validator checks that a user id refers to an existing user before a
// user-scoped query proceeds.
type Validator struct {
	users Repository
}

// NewValidator creates a user scope validator.
func NewValidator(users Repository) *Validator {
	return &Validator{users: users}
}

// Validate returns a validation.Failure when the user doesn't exist. An empty
// id is a contract violation and is rejected before any repository access.
func (v *Validator) Validate(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	_, err := v.users.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		col := &validation.Collector{}
		col.Add("there is no user with the specified id", fieldUserID)
		return col.Failure("invalid parameters provided")
	}
	if err != nil {
		return fmt.Errorf("looking up user %s: %w", userID, err)
	}
	return nil
}
