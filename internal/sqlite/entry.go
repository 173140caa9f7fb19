package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/dateutil"
	"github.com/tallyhq/tally/internal/domain/timesheet"
	"github.com/tallyhq/tally/internal/repository"
)

// EntryRepository implements timesheet.EntryRepository for SQLite
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Get retrieves an entry by ID
func (r *EntryRepository) Get(ctx context.Context, id string) (*timesheet.Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("entry: %w", repository.ErrEmptyID)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, project_id, entry_date, hours, description
		FROM timesheet_entries
		WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// ListByUser returns a user's entries within the optional inclusive bounds
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]timesheet.Entry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user: %w", repository.ErrEmptyID)
	}

	query := `
		SELECT id, user_id, project_id, entry_date, hours, description
		FROM timesheet_entries
		WHERE user_id = ?
	`
	args := []any{userID}
	query, args = appendWindow(query, args, from, to)

	return r.list(ctx, query, args)
}

// ListByUserAndProject returns a user's entries for one project within the
// optional inclusive bounds
func (r *EntryRepository) ListByUserAndProject(ctx context.Context, userID, projectID string, from, to *time.Time) ([]timesheet.Entry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user: %w", repository.ErrEmptyID)
	}
	if projectID == "" {
		return nil, fmt.Errorf("project: %w", repository.ErrEmptyID)
	}

	query := `
		SELECT id, user_id, project_id, entry_date, hours, description
		FROM timesheet_entries
		WHERE user_id = ? AND project_id = ?
	`
	args := []any{userID, projectID}
	query, args = appendWindow(query, args, from, to)

	return r.list(ctx, query, args)
}

// Create inserts a new entry, assigning an id when the supplied one is empty.
// The date is truncated to its calendar day.
func (r *EntryRepository) Create(ctx context.Context, entry *timesheet.Entry) (*timesheet.Entry, error) {
	if entry == nil {
		return nil, timesheet.ErrNilEntry
	}

	stored := *entry
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Date = dateutil.Truncate(stored.Date)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timesheet_entries (id, user_id, project_id, entry_date, hours, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, stored.ID, stored.UserID, stored.ProjectID, dateutil.Format(stored.Date), stored.Hours.String(), stored.Description)

	if isUniqueViolation(err) {
		return nil, fmt.Errorf("entry %s: %w", stored.ID, repository.ErrDuplicateID)
	}
	if isForeignKeyViolation(err) {
		// Referenced user or project disappeared after validation.
		return nil, fmt.Errorf("entry references missing user or project: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return &stored, nil
}

// Update replaces a stored entry. The date is truncated to its calendar day.
func (r *EntryRepository) Update(ctx context.Context, entry *timesheet.Entry) (*timesheet.Entry, error) {
	if entry == nil {
		return nil, timesheet.ErrNilEntry
	}
	if entry.ID == "" {
		return nil, fmt.Errorf("entry: %w", repository.ErrEmptyID)
	}

	stored := *entry
	stored.Date = dateutil.Truncate(stored.Date)

	result, err := r.db.ExecContext(ctx, `
		UPDATE timesheet_entries
		SET user_id = ?, project_id = ?, entry_date = ?, hours = ?, description = ?
		WHERE id = ?
	`, stored.UserID, stored.ProjectID, dateutil.Format(stored.Date), stored.Hours.String(), stored.Description, stored.ID)
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("entry references missing user or project: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return &stored, nil
}

// Delete removes an entry by ID
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("entry: %w", repository.ErrEmptyID)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM timesheet_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *EntryRepository) list(ctx context.Context, query string, args []any) ([]timesheet.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

// appendWindow adds the inclusive date bounds and a stable ordering. Bounds
// are compared at calendar-day precision, matching the stored format.
func appendWindow(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		query += ` AND entry_date >= ?`
		args = append(args, dateutil.Format(*from))
	}
	if to != nil {
		query += ` AND entry_date <= ?`
		args = append(args, dateutil.Format(*to))
	}
	query += ` ORDER BY entry_date, id`
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*timesheet.Entry, error) {
	var entry timesheet.Entry
	var date, hours string
	if err := row.Scan(&entry.ID, &entry.UserID, &entry.ProjectID, &date, &hours, &entry.Description); err != nil {
		return nil, err
	}

	d, ok := dateutil.Parse(date)
	if !ok {
		return nil, fmt.Errorf("invalid entry date %q", date)
	}
	entry.Date = d

	h, err := decimal.NewFromString(hours)
	if err != nil {
		return nil, fmt.Errorf("invalid entry hours %q: %w", hours, err)
	}
	entry.Hours = h

	return &entry, nil
}
