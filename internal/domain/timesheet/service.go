package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/dateutil"
	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/user"
	"github.com/tallyhq/tally/internal/repository"
)

// Service handles timesheet entry business logic.
type Service struct {
	entries        EntryRepository
	users          UserRepository
	projects       ProjectRepository
	entryValidator EntryValidator
	userValidator  UserValidator
	logger         *slog.Logger
}

// NewService creates a new timesheet service.
func NewService(
	entries EntryRepository,
	users UserRepository,
	projects ProjectRepository,
	entryValidator EntryValidator,
	userValidator UserValidator,
	logger *slog.Logger,
) *Service {
	return &Service{
		entries:        entries,
		users:          users,
		projects:       projects,
		entryValidator: entryValidator,
		userValidator:  userValidator,
		logger:         logger,
	}
}

// Get returns an entry by ID. The store's result, including its not-found
// error, passes through unchanged.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	return s.entries.Get(ctx, id)
}

// Create validates and persists a new entry. The store assigns an id when
// the supplied one is empty.
func (s *Service) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}

	if err := s.entryValidator.ValidateCreate(ctx, entry); err != nil {
		return nil, err
	}

	stored := *entry
	stored.Date = dateutil.Truncate(stored.Date)

	created, err := s.entries.Create(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("creating timesheet entry: %w", err)
	}

	s.logger.Info("timesheet entry created",
		"entry_id", created.ID, "user_id", created.UserID, "project_id", created.ProjectID)
	return created, nil
}

// Edit validates and persists changes to an existing entry. Existence is
// checked during validation; a concurrent delete between that check and the
// update surfaces as the store's own not-found error.
func (s *Service) Edit(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}

	if err := s.entryValidator.ValidateUpdate(ctx, entry); err != nil {
		return nil, err
	}

	stored := *entry
	stored.Date = dateutil.Truncate(stored.Date)

	updated, err := s.entries.Update(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("updating timesheet entry: %w", err)
	}

	s.logger.Info("timesheet entry updated", "entry_id", updated.ID)
	return updated, nil
}

// Delete removes an entry by ID. The store fails with its not-found error
// when no such entry exists.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyEntryID
	}

	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("timesheet entry deleted", "entry_id", id)
	return nil
}

// WeekForUser builds the weekly view for a user: one row per entry in the
// seven days starting at weekCommencing, with user and project names
// resolved, plus hour totals per project.
func (s *Service) WeekForUser(ctx context.Context, userID string, weekCommencing time.Time) (*WeekView, error) {
	if userID == "" {
		return nil, user.ErrEmptyUserID
	}
	if weekCommencing.IsZero() {
		return nil, ErrZeroWeekCommencing
	}

	if err := s.userValidator.Validate(ctx, userID); err != nil {
		return nil, err
	}

	from, to := dateutil.WeekWindow(weekCommencing)
	entries, err := s.entries.ListByUser(ctx, userID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("listing entries for user %s: %w", userID, err)
	}

	rows := make([]EntryRow, 0, len(entries))
	for i := range entries {
		row, err := s.toRow(ctx, &entries[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	totals, err := s.projectTotals(ctx, entries)
	if err != nil {
		return nil, err
	}

	return &WeekView{Entries: rows, ProjectHours: totals}, nil
}

func (s *Service) toRow(ctx context.Context, entry *Entry) (EntryRow, error) {
	u, err := s.users.Get(ctx, entry.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return EntryRow{}, fmt.Errorf("no user with id %s: %w", entry.UserID, user.ErrUserNotFound)
		}
		return EntryRow{}, fmt.Errorf("looking up user %s: %w", entry.UserID, err)
	}

	p, err := s.projects.Get(ctx, entry.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return EntryRow{}, fmt.Errorf("no project with id %s: %w", entry.ProjectID, project.ErrProjectNotFound)
		}
		return EntryRow{}, fmt.Errorf("looking up project %s: %w", entry.ProjectID, err)
	}

	return EntryRow{
		ID:          entry.ID,
		UserName:    u.Name,
		ProjectName: p.Name,
		Date:        entry.Date,
		Hours:       entry.Hours,
		Description: entry.Description,
	}, nil
}

// projectTotals groups the fetched entries by project and sums their hours.
// Project names are resolved again here even though the per-row mapping has
// already fetched them; a single batched lookup would remove the duplicate
// queries.
func (s *Service) projectTotals(ctx context.Context, entries []Entry) ([]ProjectHours, error) {
	order := make([]string, 0)
	sums := make(map[string]decimal.Decimal)
	for i := range entries {
		id := entries[i].ProjectID
		if _, ok := sums[id]; !ok {
			order = append(order, id)
		}
		sums[id] = sums[id].Add(entries[i].Hours)
	}

	totals := make([]ProjectHours, 0, len(order))
	for _, id := range order {
		p, err := s.projects.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("no project with project id %s: %w", id, project.ErrProjectNotFound)
			}
			return nil, fmt.Errorf("looking up project %s: %w", id, err)
		}
		totals = append(totals, ProjectHours{ProjectName: p.Name, TotalHours: sums[id]})
	}
	return totals, nil
}
