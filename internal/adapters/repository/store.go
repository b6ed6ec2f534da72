// Package repository defines the catalog and roster store interfaces and an
// in-memory implementation.
package repository

import (
	"context"

	"github.com/okian/nora/internal/domain/model"
)

// ProjectStore holds the project catalog in insertion order.
type ProjectStore interface {
	// AppendProject adds p at the end of the catalog.
	// Returns ErrProjectExists if the id is taken.
	AppendProject(ctx context.Context, p model.Project) error

	// Project returns the project with id.
	// Returns an error wrapping model.ErrNotFound if it is unknown.
	Project(ctx context.Context, id string) (model.Project, error)

	// Projects returns a snapshot of the catalog in insertion order.
	Projects(ctx context.Context) ([]model.Project, error)

	// CountProjects returns the catalog size.
	CountProjects(ctx context.Context) int
}

// ApplicationStore holds candidate applications. (ProjectID, CandidateRef)
// is unique.
type ApplicationStore interface {
	// InsertApplication records a new application.
	// Returns an error wrapping model.ErrDuplicateApplication if the pair exists.
	InsertApplication(ctx context.Context, a model.Application) error

	// Application returns the application addressed by key.
	Application(ctx context.Context, key model.ApplicationKey) (model.Application, error)

	// UpdateApplication replaces an existing application.
	UpdateApplication(ctx context.Context, a model.Application) error

	// ApplicationsByProject returns the roster of a project in creation order.
	ApplicationsByProject(ctx context.Context, projectID string) ([]model.Application, error)

	// CountApplications returns the number of stored applications.
	CountApplications(ctx context.Context) int
}
