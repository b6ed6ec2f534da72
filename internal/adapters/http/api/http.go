// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/navigation"
	"github.com/okian/nora/internal/domain/review"
	"github.com/okian/nora/internal/domain/visibility"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// NavigationDependencies drive the session and the view resolver.
type NavigationDependencies interface {
	DefaultDevice() navigation.Device
	Session(ctx context.Context) (model.Session, error)
	Current(ctx context.Context, device navigation.Device) (navigation.Resolution, error)
	Navigate(ctx context.Context, device navigation.Device, target string, params navigation.Params) (navigation.Resolution, error)
	Login(ctx context.Context, device navigation.Device, role model.Role, profile model.Profile) (navigation.Resolution, error)
	Signup(ctx context.Context, device navigation.Device, role model.Role, profile model.Profile) (navigation.Resolution, error)
	Logout(ctx context.Context, device navigation.Device) (navigation.Resolution, error)
	UpdateProfile(ctx context.Context, profile model.Profile) (model.Profile, error)
}

// CatalogDependencies expose the project catalog.
type CatalogDependencies interface {
	Catalog(ctx context.Context, c visibility.Criteria) ([]model.Project, error)
	Project(ctx context.Context, id string) (model.Project, error)
	CreateProject(ctx context.Context, in model.NewProject) (model.Project, error)
	ProfessorProjects(ctx context.Context) ([]review.Summary, error)
}

// ReviewDependencies expose applications and their review status.
type ReviewDependencies interface {
	Apply(ctx context.Context, projectID string, c model.Candidate) (model.Application, error)
	SetStatus(ctx context.Context, key model.ApplicationKey, status model.Status) (model.Application, error)
	Roster(ctx context.Context, projectID string) ([]model.Application, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	NavigationDependencies
	CatalogDependencies
	ReviewDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	navigationHandler  *NavigationHandler
	projectsHandler    *ProjectsHandler
	applicationHandler *ApplicationsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		navigationHandler:  NewNavigationHandler(deps),
		projectsHandler:    NewProjectsHandler(deps),
		applicationHandler: NewApplicationsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	nav := s.navigationHandler
	mux.HandleFunc("GET /view", MetricsMiddleware(nav.HandleCurrent, "view"))
	mux.HandleFunc("POST /navigate", MetricsMiddleware(nav.HandleNavigate, "navigate"))
	mux.HandleFunc("POST /login", MetricsMiddleware(nav.HandleLogin, "login"))
	mux.HandleFunc("POST /signup", MetricsMiddleware(nav.HandleSignup, "signup"))
	mux.HandleFunc("POST /logout", MetricsMiddleware(nav.HandleLogout, "logout"))
	mux.HandleFunc("GET /session", MetricsMiddleware(nav.HandleSession, "session"))
	mux.HandleFunc("GET /profile", MetricsMiddleware(nav.HandleGetProfile, "profile"))
	mux.HandleFunc("PUT /profile", MetricsMiddleware(nav.HandlePutProfile, "profile"))

	projects := s.projectsHandler
	mux.HandleFunc("GET /projects", MetricsMiddleware(projects.HandleList, "projects"))
	mux.HandleFunc("POST /projects", MetricsMiddleware(projects.HandleCreate, "projects"))
	mux.HandleFunc("GET /projects/{id}", MetricsMiddleware(projects.HandleGet, "project"))
	mux.HandleFunc("GET /professor/projects", MetricsMiddleware(projects.HandleOwned, "professor_projects"))

	apps := s.applicationHandler
	mux.HandleFunc("POST /projects/{id}/applications", MetricsMiddleware(apps.HandleSubmit, "applications"))
	mux.HandleFunc("GET /projects/{id}/applications", MetricsMiddleware(apps.HandleRoster, "applications"))
	mux.HandleFunc("PUT /projects/{id}/applications/{candidate}", MetricsMiddleware(apps.HandleSetStatus, "application_status"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure picks the status from the error kind.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// decodeJSON reads a single JSON object into v. Unknown fields are rejected.
func decodeJSON(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewKind(op, ErrBadRequest)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

// deviceFrom reads the ?mobile= flag, falling back to the server default.
func deviceFrom(r *http.Request, fallback navigation.Device) (navigation.Device, error) {
	raw := r.URL.Query().Get("mobile")
	if raw == "" {
		return fallback, nil
	}
	narrow, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("%w: mobile must be a boolean", ErrBadRequest)
	}
	return navigation.DeviceFor(narrow), nil
}
