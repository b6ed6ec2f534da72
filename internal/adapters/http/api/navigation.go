package api

import (
	"context"
	"net/http"

	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/navigation"
)

// viewResponse is the JSON shape of a navigation resolution.
type viewResponse struct {
	View       navigation.ViewID `json:"view"`
	Params     navigation.Params `json:"params"`
	Device     string            `json:"device"`
	Renderer   string            `json:"renderer"`
	Requested  string            `json:"requested"`
	Redirected bool              `json:"redirected"`
	Reason     navigation.Reason `json:"reason,omitempty"`
}

func toViewResponse(res navigation.Resolution) viewResponse {
	return viewResponse{
		View:       res.State.View,
		Params:     res.State.Params,
		Device:     res.Device.String(),
		Renderer:   res.Renderer,
		Requested:  res.Requested,
		Redirected: res.Redirected,
		Reason:     res.Reason,
	}
}

// navigateRequest mirrors the OpenAPI schema for POST /navigate.
type navigateRequest struct {
	View      string `json:"view"`
	ProjectID string `json:"project_id,omitempty"`
	SubjectID string `json:"subject_id,omitempty"`
}

// params builds the payload variant the requested view takes. Fields the
// view does not take are ignored.
func (n navigateRequest) params() navigation.Params {
	view, _ := navigation.ParseView(n.View)
	switch view {
	case navigation.ViewProjectDetail, navigation.ViewApplyForm, navigation.ViewCandidateManagement:
		return navigation.ProjectParams{ProjectID: n.ProjectID}
	case navigation.ViewProfile:
		return navigation.ProfileParams{SubjectID: n.SubjectID}
	}
	return navigation.NoParams{}
}

// loginRequest mirrors the OpenAPI schema for POST /login and POST /signup.
type loginRequest struct {
	Role    string        `json:"role"`
	Profile model.Profile `json:"profile"`
}

// NavigationHandler handles session and view resolution requests.
type NavigationHandler struct {
	deps NavigationDependencies
}

// NewNavigationHandler creates a new navigation handler.
func NewNavigationHandler(deps NavigationDependencies) *NavigationHandler {
	return &NavigationHandler{deps: deps}
}

// HandleCurrent handles GET /view requests.
func (h *NavigationHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	device, err := deviceFrom(r, h.deps.DefaultDevice())
	if err != nil {
		writeFailure(w, err)
		return
	}
	res, err := h.deps.Current(r.Context(), device)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(res))
}

// HandleNavigate handles POST /navigate requests. Redirects are reported in
// the body with status 200.
func (h *NavigationHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	const op = "api.navigate"
	device, err := deviceFrom(r, h.deps.DefaultDevice())
	if err != nil {
		writeFailure(w, err)
		return
	}
	var req navigateRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	res, err := h.deps.Navigate(r.Context(), device, req.View, req.params())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(res))
}

// HandleLogin handles POST /login requests.
func (h *NavigationHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.openSession(w, r, "api.login", h.deps.Login)
}

// HandleSignup handles POST /signup requests.
func (h *NavigationHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	h.openSession(w, r, "api.signup", h.deps.Signup)
}

type sessionOpener func(ctx context.Context, device navigation.Device, role model.Role, profile model.Profile) (navigation.Resolution, error)

func (h *NavigationHandler) openSession(w http.ResponseWriter, r *http.Request, op string, open sessionOpener) {
	device, err := deviceFrom(r, h.deps.DefaultDevice())
	if err != nil {
		writeFailure(w, err)
		return
	}
	var req loginRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		writeFailure(w, err)
		return
	}
	res, err := open(r.Context(), device, role, req.Profile)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(res))
}

// HandleLogout handles POST /logout requests.
func (h *NavigationHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	device, err := deviceFrom(r, h.deps.DefaultDevice())
	if err != nil {
		writeFailure(w, err)
		return
	}
	res, err := h.deps.Logout(r.Context(), device)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(res))
}

// HandleSession handles GET /session requests.
func (h *NavigationHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.deps.Session(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	sess.Role = sess.EffectiveRole()
	writeJSON(w, http.StatusOK, sess)
}

// HandleGetProfile handles GET /profile requests.
func (h *NavigationHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := h.deps.Session(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !sess.LoggedIn() {
		writeFailure(w, NewKind("api.profile", model.ErrUnauthorized))
		return
	}
	writeJSON(w, http.StatusOK, sess.Profile)
}

// HandlePutProfile handles PUT /profile requests. The body replaces the
// profile whole.
func (h *NavigationHandler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_profile"
	var p model.Profile
	if err := decodeJSON(r, op, &p); err != nil {
		writeFailure(w, err)
		return
	}
	updated, err := h.deps.UpdateProfile(r.Context(), p)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
