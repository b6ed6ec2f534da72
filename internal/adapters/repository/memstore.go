package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/pkg/metrics"
)

const defaultRosterCapacity = 8

// MemStore is an in-memory ProjectStore and ApplicationStore. Every write is
// serialized by a single lock, so it stands in for one authoritative store.
type MemStore struct {
	mu sync.RWMutex

	projects   []model.Project
	projectIdx map[string]int

	rosters        map[string][]model.Application
	rosterCapacity int
	applications   int

	closed bool
}

var (
	_ ProjectStore     = (*MemStore)(nil)
	_ ApplicationStore = (*MemStore)(nil)
)

// NewMemStore creates an empty store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		projectIdx:     make(map[string]int),
		rosters:        make(map[string][]model.Application),
		rosterCapacity: defaultRosterCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateCatalogSize(len(s.projects))
	return s
}

// AppendProject implements ProjectStore.
func (s *MemStore) AppendProject(ctx context.Context, p model.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.projectIdx[p.ID]; ok {
		return fmt.Errorf("%w: %q", ErrProjectExists, p.ID)
	}
	s.projectIdx[p.ID] = len(s.projects)
	s.projects = append(s.projects, p)
	metrics.UpdateCatalogSize(len(s.projects))
	return nil
}

// Project implements ProjectStore.
func (s *MemStore) Project(ctx context.Context, id string) (model.Project, error) {
	if err := ctx.Err(); err != nil {
		return model.Project{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.Project{}, ErrClosed
	}
	i, ok := s.projectIdx[id]
	if !ok {
		return model.Project{}, fmt.Errorf("%w: project %q", model.ErrNotFound, id)
	}
	return s.projects[i], nil
}

// Projects implements ProjectStore.
func (s *MemStore) Projects(ctx context.Context) ([]model.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out, nil
}

// CountProjects implements ProjectStore.
func (s *MemStore) CountProjects(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// InsertApplication implements ApplicationStore.
func (s *MemStore) InsertApplication(ctx context.Context, a model.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	roster := s.rosters[a.ProjectID]
	if indexOf(roster, a.CandidateRef) >= 0 {
		return fmt.Errorf("%w: %q on project %q", model.ErrDuplicateApplication, a.CandidateRef, a.ProjectID)
	}
	if roster == nil {
		roster = make([]model.Application, 0, s.rosterCapacity)
	}
	s.rosters[a.ProjectID] = append(roster, a)
	s.applications++
	return nil
}

// Application implements ApplicationStore.
func (s *MemStore) Application(ctx context.Context, key model.ApplicationKey) (model.Application, error) {
	if err := ctx.Err(); err != nil {
		return model.Application{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.Application{}, ErrClosed
	}
	roster := s.rosters[key.ProjectID]
	i := indexOf(roster, key.CandidateRef)
	if i < 0 {
		return model.Application{}, fmt.Errorf("%w: application of %q on project %q", model.ErrNotFound, key.CandidateRef, key.ProjectID)
	}
	return roster[i], nil
}

// UpdateApplication implements ApplicationStore. The roster position is kept.
func (s *MemStore) UpdateApplication(ctx context.Context, a model.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	roster := s.rosters[a.ProjectID]
	i := indexOf(roster, a.CandidateRef)
	if i < 0 {
		return fmt.Errorf("%w: application of %q on project %q", model.ErrNotFound, a.CandidateRef, a.ProjectID)
	}
	roster[i] = a
	return nil
}

// ApplicationsByProject implements ApplicationStore.
func (s *MemStore) ApplicationsByProject(ctx context.Context, projectID string) ([]model.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	roster := s.rosters[projectID]
	out := make([]model.Application, len(roster))
	copy(out, roster)
	return out, nil
}

// CountApplications implements ApplicationStore.
func (s *MemStore) CountApplications(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applications
}

// Close rejects every later call that reads or writes records.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// indexOf is linear; rosters are classroom sized.
func indexOf(roster []model.Application, candidateRef string) int {
	for i := range roster {
		if roster[i].CandidateRef == candidateRef {
			return i
		}
	}
	return -1
}
