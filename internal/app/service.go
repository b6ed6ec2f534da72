// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/okian/nora/internal/adapters/repository"
	"github.com/okian/nora/internal/domain/authz"
	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/navigation"
	"github.com/okian/nora/internal/domain/review"
	"github.com/okian/nora/pkg/logger"
	"github.com/okian/nora/pkg/metrics"
)

// ErrNotStarted is returned by intents issued before Start or after Stop.
var ErrNotStarted = errors.New("service not started")

// Service owns the single live session and serializes every intent against
// the catalog and roster stores.
type Service struct {
	mu sync.RWMutex

	// Core components
	policy   *authz.Enforcer
	machine  *navigation.Machine
	reviews  *review.Engine
	projects repository.ProjectStore
	apps     repository.ApplicationStore

	// Configuration
	device        navigation.Device
	seedCatalog   bool
	maxRosterSize int
	now           func() time.Time
	newID         func() string

	// State
	started   bool
	ownStores bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMobile sets the device class used when a caller does not supply one.
func WithMobile(mobile bool) Option {
	return func(s *Service) {
		s.device = navigation.DeviceFor(mobile)
	}
}

// WithSeedCatalog preloads the demo catalog on Start.
func WithSeedCatalog(seed bool) Option {
	return func(s *Service) {
		s.seedCatalog = seed
	}
}

// WithMaxRosterSize caps applications per project. Zero disables the cap.
func WithMaxRosterSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRosterSize = n
		}
	}
}

// WithStores replaces the in-memory stores built on Start.
func WithStores(projects repository.ProjectStore, apps repository.ApplicationStore) Option {
	return func(s *Service) {
		if projects != nil && apps != nil {
			s.projects = projects
			s.apps = apps
		}
	}
}

// WithClock sets the time source for created records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the project id generator.
func WithIDGenerator(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newID = next
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		device:      navigation.Desktop,
		seedCatalog: true,
		now:         time.Now,
		newID:       uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the policy, stores and engines. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matching service...")

	policy, err := authz.New()
	if err != nil {
		s.logger.Error(ctx, "failed to load role policy", logger.Error(err))
		return err
	}
	s.policy = policy

	if s.projects == nil || s.apps == nil {
		var seed []model.Project
		if s.seedCatalog {
			seed = repository.DemoCatalog(s.now().UTC())
		}
		store := repository.NewMemStore(repository.WithProjects(seed...))
		s.projects, s.apps = store, store
		s.ownStores = true
		s.logger.Info(ctx, "using in-memory store", logger.Int("projects", len(seed)))
	}

	s.machine = navigation.NewMachine(policy)
	s.reviews = review.New(s.projects, s.apps, policy,
		review.WithMaxRoster(s.maxRosterSize),
		review.WithClock(s.now),
	)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.String("device", s.device.String()),
		logger.Bool("seedCatalog", s.seedCatalog),
		logger.Int("maxRosterSize", s.maxRosterSize),
	)

	return nil
}

// Stop drops the session and closes the stores Start built.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping matching service...")

	// Stores passed through WithStores belong to the caller and outlive Stop.
	if s.ownStores {
		if closer, ok := s.projects.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		s.projects, s.apps = nil, nil
		s.ownStores = false
	}

	s.machine, s.reviews = nil, nil
	s.started = false
	s.logger.Info(context.Background(), "matching service stopped")
}

// DefaultDevice returns the device class used when a caller does not supply one.
func (s *Service) DefaultDevice() navigation.Device {
	return s.device
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"device":        s.device.String(),
		"maxRosterSize": s.maxRosterSize,
	}

	if s.started {
		totalProjects := s.projects.CountProjects(ctx)
		stats["totalProjects"] = totalProjects
		stats["totalApplications"] = s.apps.CountApplications(ctx)
		stats["role"] = string(s.machine.Session().EffectiveRole())
		stats["view"] = string(s.machine.State().View)

		metrics.UpdateCatalogSize(totalProjects)
	}

	return stats
}

// unauthorized counts err against action when the role gate refused it.
func unauthorized(err error, action string) {
	if errors.Is(err, model.ErrUnauthorized) {
		metrics.RecordUnauthorized(action)
	}
}
