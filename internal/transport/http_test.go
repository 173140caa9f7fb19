package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/timesheet"
	"github.com/tallyhq/tally/internal/domain/user"
	"github.com/tallyhq/tally/internal/domain/validation"
	"github.com/tallyhq/tally/internal/memory"
)

type testEnv struct {
	router  http.Handler
	entries *memory.EntryRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepository(
		user.User{ID: "u1", Name: "User 1"},
		user.User{ID: "u2", Name: "User 2"},
	)
	projects := memory.NewProjectRepository(
		project.Project{ID: "p1", Name: "Project 1"},
		project.Project{ID: "p2", Name: "Project 2"},
	)
	entries := memory.NewEntryRepository()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svcs := Services{
		Timesheets: timesheet.NewService(
			entries, users, projects,
			timesheet.NewEntryValidation(entries, users, projects),
			user.NewValidator(users),
			logger,
		),
		Users:    user.NewService(users, logger),
		Projects: project.NewService(projects, logger),
	}

	return &testEnv{router: NewRouter(svcs, logger), entries: entries}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedEntry(t *testing.T, userID, projectID, date, hours string) *timesheet.Entry {
	t.Helper()

	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	created, err := e.entries.Create(context.Background(), &timesheet.Entry{
		UserID:    userID,
		ProjectID: projectID,
		Date:      day.UTC(),
		Hours:     decimal.RequireFromString(hours),
	})
	require.NoError(t, err)
	return created
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
}

func TestCreateEntry(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/timesheets", entryRequest{
		UserID:      "u1",
		ProjectID:   "p1",
		Date:        "2024-03-04",
		Hours:       "7.5",
		Description: "dev work",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp entryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "2024-03-04", resp.Date)
	require.True(t, resp.Hours.Equal(decimal.RequireFromString("7.5")))
}

func TestCreateEntry_AllFailuresReported(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/timesheets", entryRequest{
		UserID:    "ghost",
		ProjectID: "ghost",
		Date:      "not-a-date",
		Hours:     "25",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var failure validation.Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	require.Equal(t, "the new timesheet entry is invalid", failure.Message)
	require.Len(t, failure.Details, 4)
	require.Equal(t, "UserID", failure.Details[0].Target)
	require.Equal(t, "ProjectID", failure.Details[1].Target)
	require.Equal(t, "Date", failure.Details[2].Target)
	require.Equal(t, "Hours", failure.Details[3].Target)
}

func TestCreateEntry_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/timesheets", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEntry_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/timesheets/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEntry(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedEntry(t, "u1", "p1", "2024-03-04", "8")

	rec := env.do(t, http.MethodPut, "/api/timesheets/"+seeded.ID, entryRequest{
		UserID:    "u1",
		ProjectID: "p1",
		Date:      "2024-03-04",
		Hours:     "6.5",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Hours.Equal(decimal.RequireFromString("6.5")))
}

func TestUpdateEntry_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/timesheets/missing", entryRequest{
		UserID:    "u1",
		ProjectID: "p1",
		Date:      "2024-03-04",
		Hours:     "8",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var failure validation.Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	require.Equal(t, "the updated timesheet entry is invalid", failure.Message)
}

func TestDeleteEntry(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedEntry(t, "u1", "p1", "2024-03-04", "8")

	rec := env.do(t, http.MethodDelete, "/api/timesheets/"+seeded.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/timesheets/"+seeded.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeek(t *testing.T) {
	env := newTestEnv(t)
	env.seedEntry(t, "u1", "p1", "2024-03-04", "3")
	env.seedEntry(t, "u1", "p1", "2024-03-05", "4")
	env.seedEntry(t, "u1", "p2", "2024-03-06", "2")
	// Outside the week and for another user; both excluded.
	env.seedEntry(t, "u1", "p1", "2024-03-11", "8")
	env.seedEntry(t, "u2", "p1", "2024-03-05", "8")

	rec := env.do(t, http.MethodGet, "/api/users/u1/timesheets?week=2024-03-04", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp weekResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 3)
	require.Equal(t, "User 1", resp.Entries[0].UserName)
	require.Equal(t, "Project 1", resp.Entries[0].ProjectName)

	require.Len(t, resp.ProjectHours, 2)
	require.Equal(t, "Project 1", resp.ProjectHours[0].ProjectName)
	require.True(t, resp.ProjectHours[0].TotalHours.Equal(decimal.RequireFromString("7")))
	require.Equal(t, "Project 2", resp.ProjectHours[1].ProjectName)
	require.True(t, resp.ProjectHours[1].TotalHours.Equal(decimal.RequireFromString("2")))
}

func TestWeek_BadWeekParam(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users/u1/timesheets?week=March", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/u1/timesheets", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeek_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users/ghost/timesheets?week=2024-03-04", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var failure validation.Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	require.Equal(t, "invalid parameters provided", failure.Message)
	require.Len(t, failure.Details, 1)
	require.Equal(t, "there is no user with the specified id", failure.Details[0].Description)
}
