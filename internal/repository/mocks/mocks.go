// Package mocks provides testify mocks for the repository contracts.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/timesheet"
	"github.com/tallyhq/tally/internal/domain/user"
)

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EntryRepository is a mock for timesheet.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Get(ctx context.Context, id string) (*timesheet.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*timesheet.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]timesheet.Entry, error) {
	args := m.Called(ctx, userID, from, to)
	if list, ok := args.Get(0).([]timesheet.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) ListByUserAndProject(ctx context.Context, userID, projectID string, from, to *time.Time) ([]timesheet.Entry, error) {
	args := m.Called(ctx, userID, projectID, from, to)
	if list, ok := args.Get(0).([]timesheet.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Create(ctx context.Context, entry *timesheet.Entry) (*timesheet.Entry, error) {
	args := m.Called(ctx, entry)
	if e, ok := args.Get(0).(*timesheet.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Update(ctx context.Context, entry *timesheet.Entry) (*timesheet.Entry, error) {
	args := m.Called(ctx, entry)
	if e, ok := args.Get(0).(*timesheet.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
