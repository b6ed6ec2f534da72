package navigation

// Params is the per-view navigation payload. Each view accepts exactly one
// variant; a mismatched variant is dropped during resolution.
type Params interface {
	isParams()
}

// NoParams is carried by views that take no payload.
type NoParams struct{}

// ProjectParams is carried by project-detail, apply-form and candidate-management.
type ProjectParams struct {
	ProjectID string `json:"project_id"`
}

// ProfileParams is carried by the profile view.
type ProfileParams struct {
	SubjectID string `json:"subject_id"`
}

func (NoParams) isParams()      {}
func (ProjectParams) isParams() {}
func (ProfileParams) isParams() {}

type paramKind int

const (
	kindNone paramKind = iota
	kindProject
	kindProfile
)

func kindOf(v ViewID) paramKind {
	switch v {
	case ViewProjectDetail, ViewApplyForm, ViewCandidateManagement:
		return kindProject
	case ViewProfile:
		return kindProfile
	}
	return kindNone
}

// coerce returns the variant v accepts, reporting false when v needs a
// payload the intent did not carry.
func coerce(v ViewID, p Params) (Params, bool) {
	switch kindOf(v) {
	case kindProject:
		pp, ok := p.(ProjectParams)
		if !ok || pp.ProjectID == "" {
			return ProjectParams{}, false
		}
		return pp, true
	case kindProfile:
		pp, ok := p.(ProfileParams)
		if !ok {
			// Without a subject the profile view shows the session owner.
			return ProfileParams{}, true
		}
		return pp, true
	}
	return NoParams{}, true
}
