package api

import (
	"net/http"

	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/visibility"
)

// ProjectsHandler handles catalog requests.
type ProjectsHandler struct {
	deps CatalogDependencies
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(deps CatalogDependencies) *ProjectsHandler {
	return &ProjectsHandler{deps: deps}
}

// HandleList handles GET /projects requests. The text, institution,
// research_area and mode query parameters narrow the visible catalog.
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := visibility.Criteria{
		Text:         q.Get("text"),
		Institution:  q.Get("institution"),
		ResearchArea: q.Get("research_area"),
		Mode:         q.Get("mode"),
	}
	projects, err := h.deps.Catalog(r.Context(), criteria)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleGet handles GET /projects/{id} requests.
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Project(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /projects requests.
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_project"
	var in model.NewProject
	if err := decodeJSON(r, op, &in); err != nil {
		writeFailure(w, err)
		return
	}
	p, err := h.deps.CreateProject(r.Context(), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Location", "/projects/"+p.ID)
	writeJSON(w, http.StatusCreated, p)
}

// HandleOwned handles GET /professor/projects requests.
func (h *ProjectsHandler) HandleOwned(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.deps.ProfessorProjects(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
