// Package memory provides in-memory repository implementations backed by
// mutex-guarded maps. They hold whole values and hand out copies, so callers
// never alias stored state.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/dateutil"
	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/timesheet"
	"github.com/tallyhq/tally/internal/domain/user"
	"github.com/tallyhq/tally/internal/repository"
)

// UserRepository implements user.Repository in memory.
type UserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]user.User
}

// NewUserRepository creates a user repository holding the given users.
func NewUserRepository(seed ...user.User) *UserRepository {
	r := &UserRepository{users: make(map[string]user.User)}
	for _, u := range seed {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		r.order = append(r.order, u.ID)
		r.users[u.ID] = u
	}
	return r
}

// Get returns the user with the given id.
func (r *UserRepository) Get(_ context.Context, id string) (*user.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user: %w", repository.ErrEmptyID)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// List returns all users in insertion order.
func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]user.User, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.users[id])
	}
	return list, nil
}

// ProjectRepository implements project.Repository in memory.
type ProjectRepository struct {
	mu       sync.RWMutex
	order    []string
	projects map[string]project.Project
}

// NewProjectRepository creates a project repository holding the given projects.
func NewProjectRepository(seed ...project.Project) *ProjectRepository {
	r := &ProjectRepository{projects: make(map[string]project.Project)}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.order = append(r.order, p.ID)
		r.projects[p.ID] = p
	}
	return r
}

// Get returns the project with the given id.
func (r *ProjectRepository) Get(_ context.Context, id string) (*project.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("project: %w", repository.ErrEmptyID)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// List returns all projects in insertion order.
func (r *ProjectRepository) List(_ context.Context) ([]project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]project.Project, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.projects[id])
	}
	return list, nil
}

// EntryRepository implements timesheet.EntryRepository in memory.
type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]timesheet.Entry
}

// NewEntryRepository creates an empty entry repository.
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{entries: make(map[string]timesheet.Entry)}
}

// Get returns the entry with the given id.
func (r *EntryRepository) Get(_ context.Context, id string) (*timesheet.Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("entry: %w", repository.ErrEmptyID)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

// ListByUser returns the user's entries within the optional inclusive bounds,
// ordered by date then id.
func (r *EntryRepository) ListByUser(_ context.Context, userID string, from, to *time.Time) ([]timesheet.Entry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user: %w", repository.ErrEmptyID)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(e *timesheet.Entry) bool {
		return e.UserID == userID && inWindow(e.Date, from, to)
	}), nil
}

// ListByUserAndProject returns the user's entries for one project within the
// optional inclusive bounds, ordered by date then id.
func (r *EntryRepository) ListByUserAndProject(_ context.Context, userID, projectID string, from, to *time.Time) ([]timesheet.Entry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user: %w", repository.ErrEmptyID)
	}
	if projectID == "" {
		return nil, fmt.Errorf("project: %w", repository.ErrEmptyID)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(e *timesheet.Entry) bool {
		return e.UserID == userID && e.ProjectID == projectID && inWindow(e.Date, from, to)
	}), nil
}

// Create stores a new entry, assigning an id when the supplied one is empty.
// The date is truncated to its calendar day.
func (r *EntryRepository) Create(_ context.Context, entry *timesheet.Entry) (*timesheet.Entry, error) {
	if entry == nil {
		return nil, timesheet.ErrNilEntry
	}

	stored := *entry
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Date = dateutil.Truncate(stored.Date)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[stored.ID]; ok {
		return nil, fmt.Errorf("entry %s: %w", stored.ID, repository.ErrDuplicateID)
	}
	r.entries[stored.ID] = stored
	return &stored, nil
}

// Update replaces a stored entry. The date is truncated to its calendar day.
func (r *EntryRepository) Update(_ context.Context, entry *timesheet.Entry) (*timesheet.Entry, error) {
	if entry == nil {
		return nil, timesheet.ErrNilEntry
	}
	if entry.ID == "" {
		return nil, fmt.Errorf("entry: %w", repository.ErrEmptyID)
	}

	stored := *entry
	stored.Date = dateutil.Truncate(stored.Date)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[stored.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.entries[stored.ID] = stored
	return &stored, nil
}

// Delete removes an entry by id.
func (r *EntryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("entry: %w", repository.ErrEmptyID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// filter must be called with the lock held.
func (r *EntryRepository) filter(keep func(*timesheet.Entry) bool) []timesheet.Entry {
	var list []timesheet.Entry
	for id := range r.entries {
		e := r.entries[id]
		if keep(&e) {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func inWindow(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}
