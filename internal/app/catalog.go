package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/nora/internal/domain/authz"
	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/review"
	"github.com/okian/nora/internal/domain/visibility"
	"github.com/okian/nora/pkg/logger"
	"github.com/okian/nora/pkg/metrics"
)

// Catalog returns the projects the session may see that match c, in
// catalog order.
func (s *Service) Catalog(ctx context.Context, c visibility.Criteria) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}

	start := time.Now()
	all, err := s.projects.Projects(ctx)
	if err != nil {
		return nil, err
	}
	visible := visibility.ResolveVisible(all, s.machine.Session(), c)
	metrics.RecordFilter(float64(time.Since(start).Microseconds())/1000, len(visible))

	s.logger.Debug(ctx, "catalog resolved",
		logger.Int("catalog", len(all)),
		logger.Int("visible", len(visible)),
		logger.Bool("filtered", !c.Empty()),
	)
	return visible, nil
}

// Project returns a single project. Restricted projects the session may not
// see are reported as not found, except to their owner.
func (s *Service) Project(ctx context.Context, id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.Project{}, ErrNotStarted
	}

	p, err := s.projects.Project(ctx, id)
	if err != nil {
		return model.Project{}, err
	}
	sess := s.machine.Session()
	owner := sess.EffectiveRole() == model.RoleProfessor && p.ProfessorRef == sess.ActorRef()
	if !owner && !visibility.Visible(p, sess.Profile.Institution) {
		return model.Project{}, fmt.Errorf("%w: project %q", model.ErrNotFound, id)
	}
	return p, nil
}

// CreateProject appends a project owned by the session professor. The id is
// fresh, the institution is the professor's and visibility defaults to
// institution-only.
func (s *Service) CreateProject(ctx context.Context, in model.NewProject) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Project{}, ErrNotStarted
	}

	sess := s.machine.Session()
	if !s.policy.Can(sess.EffectiveRole(), authz.ActionCreate) {
		err := fmt.Errorf("%w: %s may not create projects", model.ErrUnauthorized, sess.EffectiveRole())
		unauthorized(err, "create_project")
		return model.Project{}, err
	}
	if err := in.Validate(); err != nil {
		return model.Project{}, err
	}
	if in.Visibility == "" {
		in.Visibility = model.InstitutionOnly
	}

	p := model.Project{
		ID:           s.newID(),
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		Duration:     in.Duration,
		ProfessorRef: sess.ActorRef(),
		Institution:  sess.Profile.Institution,
		Visibility:   in.Visibility,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.projects.AppendProject(ctx, p); err != nil {
		s.logger.Error(ctx, "failed to append project", logger.String("project_id", p.ID), logger.Error(err))
		return model.Project{}, err
	}

	metrics.RecordProjectCreated()
	s.logger.Info(ctx, "project created",
		logger.String("project_id", p.ID),
		logger.String("professor", p.ProfessorRef),
		logger.String("visibility", string(p.Visibility)),
	)
	return p, nil
}

// ProfessorProjects lists the session professor's projects with their
// roster tallies, in catalog order.
func (s *Service) ProfessorProjects(ctx context.Context) ([]review.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}

	sess := s.machine.Session()
	if !s.policy.Can(sess.EffectiveRole(), authz.ActionReview) {
		err := fmt.Errorf("%w: %s has no projects", model.ErrUnauthorized, sess.EffectiveRole())
		unauthorized(err, "list_own_projects")
		return nil, err
	}

	all, err := s.projects.Projects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]review.Summary, 0, len(all))
	for _, p := range all {
		if p.ProfessorRef != sess.ActorRef() {
			continue
		}
		counts, err := s.reviews.CountByStatus(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, review.Summary{Project: p, Counts: counts})
	}
	return out, nil
}
