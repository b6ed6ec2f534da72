package api

import (
	"net/http"

	"github.com/okian/nora/internal/domain/model"
)

type statusRequest struct {
	Status string `json:"status"`
}

// ApplicationsHandler handles application and review requests.
type ApplicationsHandler struct {
	deps ReviewDependencies
}

// NewApplicationsHandler creates a new applications handler.
func NewApplicationsHandler(deps ReviewDependencies) *ApplicationsHandler {
	return &ApplicationsHandler{deps: deps}
}

// HandleSubmit handles POST /projects/{id}/applications requests.
func (h *ApplicationsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.apply"
	var c model.Candidate
	if err := decodeJSON(r, op, &c); err != nil {
		writeFailure(w, err)
		return
	}
	a, err := h.deps.Apply(r.Context(), r.PathValue("id"), c)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// HandleRoster handles GET /projects/{id}/applications requests.
func (h *ApplicationsHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.deps.Roster(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// HandleSetStatus handles PUT /projects/{id}/applications/{candidate} requests.
func (h *ApplicationsHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_status"
	var req statusRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		writeFailure(w, err)
		return
	}
	key := model.ApplicationKey{ProjectID: r.PathValue("id"), CandidateRef: r.PathValue("candidate")}
	a, err := h.deps.SetStatus(r.Context(), key, status)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
