package service

import (
	"context"
	"errors"

	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/pkg/logger"
	"github.com/okian/nora/pkg/metrics"
)

// Apply submits the session student's application to projectID.
func (s *Service) Apply(ctx context.Context, projectID string, c model.Candidate) (model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Application{}, ErrNotStarted
	}

	a, err := s.reviews.Submit(ctx, s.machine.Session(), projectID, c)
	if err != nil {
		unauthorized(err, "apply")
		if errors.Is(err, model.ErrDuplicateApplication) {
			metrics.RecordApplicationDuplicate()
		}
		s.logger.Warn(ctx, "application rejected",
			logger.String("project_id", projectID),
			logger.Error(err),
		)
		return model.Application{}, err
	}

	metrics.RecordApplicationSubmitted()
	s.logger.Info(ctx, "application submitted",
		logger.String("project_id", projectID),
		logger.String("candidate", a.CandidateRef),
	)
	return a, nil
}

// SetStatus overwrites the review status of an application on a project the
// session professor owns.
func (s *Service) SetStatus(ctx context.Context, key model.ApplicationKey, status model.Status) (model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Application{}, ErrNotStarted
	}

	a, err := s.reviews.SetStatus(ctx, s.machine.Session(), key, status)
	if err != nil {
		unauthorized(err, "set_status")
		s.logger.Warn(ctx, "status change rejected",
			logger.String("project_id", key.ProjectID),
			logger.String("candidate", key.CandidateRef),
			logger.Error(err),
		)
		return model.Application{}, err
	}

	metrics.RecordStatusChange(string(status))
	s.logger.Info(ctx, "application status changed",
		logger.String("project_id", key.ProjectID),
		logger.String("candidate", key.CandidateRef),
		logger.String("status", string(status)),
	)
	return a, nil
}

// Roster returns the applications of a project the session professor owns,
// in creation order.
func (s *Service) Roster(ctx context.Context, projectID string) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}

	roster, err := s.reviews.Roster(ctx, s.machine.Session(), projectID)
	if err != nil {
		unauthorized(err, "roster")
		return nil, err
	}
	return roster, nil
}
