package service

import (
	"context"
	"fmt"

	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/navigation"
	"github.com/okian/nora/pkg/logger"
	"github.com/okian/nora/pkg/metrics"
)

// Session returns the live session.
func (s *Service) Session(_ context.Context) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.Session{}, ErrNotStarted
	}
	return s.machine.Session(), nil
}

// Current renders the committed view for device.
func (s *Service) Current(_ context.Context, device navigation.Device) (navigation.Resolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return navigation.Resolution{}, ErrNotStarted
	}
	return s.machine.Current(device), nil
}

// Navigate resolves a navigation intent. Unauthorized and unknown targets are
// redirected rather than failed.
func (s *Service) Navigate(ctx context.Context, device navigation.Device, target string, params navigation.Params) (navigation.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return navigation.Resolution{}, ErrNotStarted
	}
	res := s.machine.Navigate(device, target, params)
	s.observe(ctx, res)
	return res, nil
}

// Login opens a session for role and lands on its home view.
func (s *Service) Login(ctx context.Context, device navigation.Device, role model.Role, profile model.Profile) (navigation.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return navigation.Resolution{}, ErrNotStarted
	}
	res, err := s.machine.Login(device, role, profile)
	if err != nil {
		s.logger.Warn(ctx, "login rejected", logger.String("role", string(role)), logger.Error(err))
		return navigation.Resolution{}, err
	}
	metrics.RecordLogin(string(role))
	s.logger.Info(ctx, "session opened",
		logger.String("role", string(role)),
		logger.String("actor", profile.DisplayName),
	)
	s.observe(ctx, res)
	return res, nil
}

// Signup registers a new profile and logs it in. Unlike Login it requires
// an institution, which the catalog visibility gate depends on.
func (s *Service) Signup(ctx context.Context, device navigation.Device, role model.Role, profile model.Profile) (navigation.Resolution, error) {
	if profile.Institution == "" {
		return navigation.Resolution{}, fmt.Errorf("%w: Institution failed required", model.ErrInvalidInput)
	}
	return s.Login(ctx, device, role, profile)
}

// Logout drops the session and lands on the landing view.
func (s *Service) Logout(ctx context.Context, device navigation.Device) (navigation.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return navigation.Resolution{}, ErrNotStarted
	}
	res := s.machine.Logout(device)
	s.logger.Info(ctx, "session closed")
	s.observe(ctx, res)
	return res, nil
}

// UpdateProfile replaces the session profile whole.
func (s *Service) UpdateProfile(ctx context.Context, profile model.Profile) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Profile{}, ErrNotStarted
	}
	if err := s.machine.UpdateProfile(profile); err != nil {
		unauthorized(err, "update_profile")
		return model.Profile{}, err
	}
	s.logger.Info(ctx, "profile updated", logger.String("actor", profile.DisplayName))
	return s.machine.Session().Profile, nil
}

func (s *Service) observe(ctx context.Context, res navigation.Resolution) {
	metrics.RecordNavigation(string(res.State.View), res.Device.String())
	if res.Redirected {
		requested := "unknown"
		if v, ok := navigation.ParseView(res.Requested); ok {
			requested = string(v)
		}
		metrics.RecordRedirect(requested, string(res.Reason))
		s.logger.Debug(ctx, "navigation redirected",
			logger.String("requested", res.Requested),
			logger.String("view", string(res.State.View)),
			logger.String("reason", string(res.Reason)),
		)
	}
}
