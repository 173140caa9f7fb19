// Package transport exposes the timesheet services over HTTP/JSON.
package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/dateutil"
	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/timesheet"
	"github.com/tallyhq/tally/internal/domain/user"
	"github.com/tallyhq/tally/internal/domain/validation"
	"github.com/tallyhq/tally/internal/repository"
)

// Services bundles the services the router dispatches to.
type Services struct {
	Timesheets *timesheet.Service
	Users      *user.Service
	Projects   *project.Service
}

// Server wires HTTP handlers.
type Server struct {
	svcs   Services
	logger *slog.Logger
}

// NewRouter creates the HTTP router.
func NewRouter(svcs Services, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	srv := &Server{svcs: svcs, logger: logger}

	r.Get("/health", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/users", srv.handleListUsers)
		r.Get("/users/{id}/timesheets", srv.handleWeek)
		r.Get("/projects", srv.handleListProjects)
		r.Get("/timesheets/{id}", srv.handleGetEntry)
		r.Post("/timesheets", srv.handleCreateEntry)
		r.Put("/timesheets/{id}", srv.handleUpdateEntry)
		r.Delete("/timesheets/{id}", srv.handleDeleteEntry)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svcs.Users.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svcs.Projects.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svcs.Timesheets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.decodeEntry(w, r)
	if !ok {
		return
	}
	entry.ID = ""

	created, err := s.svcs.Timesheets.Create(r.Context(), entry)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(created))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.decodeEntry(w, r)
	if !ok {
		return
	}
	entry.ID = chi.URLParam(r, "id")

	updated, err := s.svcs.Timesheets.Edit(r.Context(), entry)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svcs.Timesheets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	week, ok := dateutil.Parse(r.URL.Query().Get("week"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "week must be a YYYY-MM-DD date"})
		return
	}

	view, err := s.svcs.Timesheets.WeekForUser(r.Context(), chi.URLParam(r, "id"), week)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekResponse(view))
}

// entryRequest is the submitted form of an entry. A malformed date or hours
// value is passed through as the zero value so the validator can report it
// as a field-targeted failure alongside any others.
type entryRequest struct {
	UserID      string `json:"user_id"`
	ProjectID   string `json:"project_id"`
	Date        string `json:"date"`
	Hours       string `json:"hours"`
	Description string `json:"description"`
}

func (s *Server) decodeEntry(w http.ResponseWriter, r *http.Request) (*timesheet.Entry, bool) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return nil, false
	}

	date, _ := dateutil.Parse(req.Date)
	hours, err := decimal.NewFromString(req.Hours)
	if err != nil {
		hours = decimal.Zero
	}

	return &timesheet.Entry{
		UserID:      req.UserID,
		ProjectID:   req.ProjectID,
		Date:        date,
		Hours:       hours,
		Description: req.Description,
	}, true
}

type entryResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ProjectID   string          `json:"project_id"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description,omitempty"`
}

func toEntryResponse(e *timesheet.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		Date:        dateutil.Format(e.Date),
		Hours:       e.Hours,
		Description: e.Description,
	}
}

type weekRowResponse struct {
	ID          string          `json:"id"`
	UserName    string          `json:"user_name"`
	ProjectName string          `json:"project_name"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description,omitempty"`
}

type weekResponse struct {
	Entries      []weekRowResponse        `json:"entries"`
	ProjectHours []timesheet.ProjectHours `json:"project_hours"`
}

func toWeekResponse(v *timesheet.WeekView) weekResponse {
	rows := make([]weekRowResponse, 0, len(v.Entries))
	for _, row := range v.Entries {
		rows = append(rows, weekRowResponse{
			ID:          row.ID,
			UserName:    row.UserName,
			ProjectName: row.ProjectName,
			Date:        dateutil.Format(row.Date),
			Hours:       row.Hours,
			Description: row.Description,
		})
	}
	return weekResponse{Entries: rows, ProjectHours: v.ProjectHours}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the three error tiers: validation failures are 422 with
// their detail list, contract violations 400, missing entities 404, and
// anything else (including referential inconsistency found while building
// the weekly view) 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if f, ok := validation.AsFailure(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, f)
		return
	}

	switch {
	case errors.Is(err, timesheet.ErrNilEntry),
		errors.Is(err, timesheet.ErrEmptyEntryID),
		errors.Is(err, timesheet.ErrZeroWeekCommencing),
		errors.Is(err, user.ErrEmptyUserID),
		errors.Is(err, project.ErrEmptyProjectID),
		errors.Is(err, repository.ErrEmptyID):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
