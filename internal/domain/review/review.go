// Package review records candidate applications and their review status.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/nora/internal/domain/authz"
	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/visibility"
)

// ErrRosterFull is returned when a project roster reached its cap.
var ErrRosterFull = fmt.Errorf("%w: roster is full", model.ErrInvalidInput)

// Authorizer answers whether a role may perform a catalog action.
type Authorizer interface {
	Can(role model.Role, action authz.Action) bool
}

// Projects reads the catalog.
type Projects interface {
	Project(ctx context.Context, id string) (model.Project, error)
}

// Applications is the authoritative application store. InsertApplication
// must reject a second record for the same (project, candidate) pair.
type Applications interface {
	InsertApplication(ctx context.Context, a model.Application) error
	Application(ctx context.Context, key model.ApplicationKey) (model.Application, error)
	UpdateApplication(ctx context.Context, a model.Application) error
	ApplicationsByProject(ctx context.Context, projectID string) ([]model.Application, error)
}

// Counts tallies a roster by status.
type Counts struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// Summary is a project with its roster tally.
type Summary struct {
	Project model.Project `json:"project"`
	Counts  Counts        `json:"counts"`
}

// Engine applies the review rules on top of the stores.
type Engine struct {
	projects  Projects
	apps      Applications
	policy    Authorizer
	maxRoster int
	now       func() time.Time
}

// New creates a review engine.
func New(projects Projects, apps Applications, policy Authorizer, opts ...Option) *Engine {
	e := &Engine{
		projects: projects,
		apps:     apps,
		policy:   policy,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit records the session student's application to projectID with status
// pending. A second submission for the same pair fails with
// model.ErrDuplicateApplication and leaves the roster untouched.
func (e *Engine) Submit(ctx context.Context, s model.Session, projectID string, c model.Candidate) (model.Application, error) {
	if !e.policy.Can(s.EffectiveRole(), authz.ActionApply) {
		return model.Application{}, fmt.Errorf("%w: %s may not apply", model.ErrUnauthorized, s.EffectiveRole())
	}
	if err := c.Validate(); err != nil {
		return model.Application{}, err
	}
	p, err := e.projects.Project(ctx, projectID)
	if err != nil {
		return model.Application{}, err
	}
	// Restricted projects the student cannot see do not exist for them.
	if !visibility.Visible(p, s.Profile.Institution) {
		return model.Application{}, fmt.Errorf("%w: project %q", model.ErrNotFound, projectID)
	}

	roster, err := e.apps.ApplicationsByProject(ctx, projectID)
	if err != nil {
		return model.Application{}, err
	}
	ref := s.ActorRef()
	for _, a := range roster {
		if a.CandidateRef == ref {
			return model.Application{}, fmt.Errorf("%w: %q on project %q", model.ErrDuplicateApplication, ref, projectID)
		}
	}
	if e.maxRoster > 0 && len(roster) >= e.maxRoster {
		return model.Application{}, fmt.Errorf("%w: project %q has %d applications", ErrRosterFull, projectID, len(roster))
	}

	a := model.Application{
		ProjectID:    projectID,
		CandidateRef: ref,
		Candidate:    c,
		Status:       model.StatusPending,
		CreatedAt:    e.now().UTC(),
	}
	if err := e.apps.InsertApplication(ctx, a); err != nil {
		return model.Application{}, err
	}
	return a, nil
}

// SetStatus overwrites the status of an application. Only the professor who
// owns the project may do it. Any status may replace any other.
func (e *Engine) SetStatus(ctx context.Context, s model.Session, key model.ApplicationKey, status model.Status) (model.Application, error) {
	if !status.Valid() {
		return model.Application{}, fmt.Errorf("%w: unknown status %q", model.ErrInvalidInput, status)
	}
	if _, err := e.owned(ctx, s, key.ProjectID); err != nil {
		return model.Application{}, err
	}
	a, err := e.apps.Application(ctx, key)
	if err != nil {
		return model.Application{}, err
	}
	a.Status = status
	if err := e.apps.UpdateApplication(ctx, a); err != nil {
		return model.Application{}, err
	}
	return a, nil
}

// ListByProject returns every application of projectID in creation order.
func (e *Engine) ListByProject(ctx context.Context, projectID string) ([]model.Application, error) {
	if _, err := e.projects.Project(ctx, projectID); err != nil {
		return nil, err
	}
	return e.apps.ApplicationsByProject(ctx, projectID)
}

// Roster is ListByProject restricted to the owning professor.
func (e *Engine) Roster(ctx context.Context, s model.Session, projectID string) ([]model.Application, error) {
	if _, err := e.owned(ctx, s, projectID); err != nil {
		return nil, err
	}
	return e.apps.ApplicationsByProject(ctx, projectID)
}

// CountByStatus tallies the roster of projectID.
func (e *Engine) CountByStatus(ctx context.Context, projectID string) (Counts, error) {
	roster, err := e.ListByProject(ctx, projectID)
	if err != nil {
		return Counts{}, err
	}
	var c Counts
	for _, a := range roster {
		switch a.Status {
		case model.StatusPending:
			c.Pending++
		case model.StatusAccepted:
			c.Accepted++
		case model.StatusRejected:
			c.Rejected++
		}
	}
	c.Total = len(roster)
	return c, nil
}

// owned loads projectID and checks the session professor owns it.
func (e *Engine) owned(ctx context.Context, s model.Session, projectID string) (model.Project, error) {
	if !e.policy.Can(s.EffectiveRole(), authz.ActionReview) {
		return model.Project{}, fmt.Errorf("%w: %s may not review", model.ErrUnauthorized, s.EffectiveRole())
	}
	p, err := e.projects.Project(ctx, projectID)
	if err != nil {
		return model.Project{}, err
	}
	if p.ProfessorRef != s.ActorRef() {
		return model.Project{}, fmt.Errorf("%w: project %q belongs to another professor", model.ErrUnauthorized, projectID)
	}
	return p, nil
}
