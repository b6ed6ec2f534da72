package repository

import "github.com/okian/nora/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithProjects preloads the catalog. Projects with a duplicate id are skipped.
func WithProjects(projects ...model.Project) Option {
	return func(s *MemStore) {
		for _, p := range projects {
			if _, ok := s.projectIdx[p.ID]; ok {
				continue
			}
			s.projectIdx[p.ID] = len(s.projects)
			s.projects = append(s.projects, p)
		}
	}
}

// WithRosterCapacity sets the initial capacity of each project roster.
func WithRosterCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.rosterCapacity = n
		}
	}
}
