package timesheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/dateutil"
	"github.com/tallyhq/tally/internal/domain/validation"
	"github.com/tallyhq/tally/internal/repository"
)

var maxHours = decimal.NewFromInt(24)

// EntryValidation checks every rule for an entry independently, so a single
// call reports all simultaneous problems. Each call uses a fresh collector;
// no state accumulates on the validator value.
type EntryValidation struct {
	entries  EntryRepository
	users    UserRepository
	projects ProjectRepository
}

// NewEntryValidation creates an entry validator over the given lookups.
func NewEntryValidation(entries EntryRepository, users UserRepository, projects ProjectRepository) *EntryValidation {
	return &EntryValidation{entries: entries, users: users, projects: projects}
}

// ValidateCreate validates an entry that is about to be created.
func (v *EntryValidation) ValidateCreate(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}

	col := &validation.Collector{}
	if err := v.commonRules(ctx, entry, col); err != nil {
		return err
	}

	if f := col.Failure("the new timesheet entry is invalid"); f != nil {
		return f
	}
	return nil
}

// ValidateUpdate validates an entry that is about to replace a stored one.
// On top of the common rules, the entry id must resolve to an existing entry.
func (v *EntryValidation) ValidateUpdate(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}

	col := &validation.Collector{}
	if err := v.commonRules(ctx, entry, col); err != nil {
		return err
	}

	if entry.ID == "" {
		col.Add(fmt.Sprintf("no timesheet entry found for id %s", entry.ID), FieldID)
	} else if _, err := v.entries.Get(ctx, entry.ID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("looking up entry %s: %w", entry.ID, err)
		}
		col.Add(fmt.Sprintf("no timesheet entry found for id %s", entry.ID), FieldID)
	}

	if f := col.Failure("the updated timesheet entry is invalid"); f != nil {
		return f
	}
	return nil
}

func (v *EntryValidation) commonRules(ctx context.Context, entry *Entry, col *validation.Collector) error {
	// TODO: the description should name entry.UserID, not the entry id; the
	// edit form keys its inline message off the current text.
	userMissing := fmt.Sprintf("no user found for id %s", entry.ID)
	if entry.UserID == "" {
		col.Add(userMissing, FieldUserID)
	} else if _, err := v.users.Get(ctx, entry.UserID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("looking up user %s: %w", entry.UserID, err)
		}
		col.Add(userMissing, FieldUserID)
	}

	projectMissing := fmt.Sprintf("no project found for id %s", entry.ProjectID)
	if entry.ProjectID == "" {
		col.Add(projectMissing, FieldProjectID)
	} else if _, err := v.projects.Get(ctx, entry.ProjectID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("looking up project %s: %w", entry.ProjectID, err)
		}
		col.Add(projectMissing, FieldProjectID)
	}

	if entry.Date.IsZero() {
		col.Add("a date for this entry is required", FieldDate)
	}

	if !entry.Hours.IsPositive() || entry.Hours.GreaterThan(maxHours) {
		col.Add("the hours must be between 0 and 24", FieldHours)
	}

	// Duplicate check covers the full calendar day of the entry's date. An
	// entry with the same id is the one being edited and doesn't count.
	if entry.UserID != "" && entry.ProjectID != "" {
		from, to := dateutil.DayWindow(entry.Date)
		existing, err := v.entries.ListByUserAndProject(ctx, entry.UserID, entry.ProjectID, &from, &to)
		if err != nil {
			return fmt.Errorf("querying entries for duplicates: %w", err)
		}
		for i := range existing {
			if existing[i].ID != entry.ID {
				col.Add("there is already a timesheet entry for this date, user and project", FieldDate)
				break
			}
		}
	}

	return nil
}
