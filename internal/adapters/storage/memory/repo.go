// Package memory provides a slice-backed project repository.
package memory

import (
	"context"
	"slices"

	"github.com/evanschultz/plank/internal/app"
	"github.com/evanschultz/plank/internal/domain"
)

// Repository keeps projects in insertion order for the life of the process.
type Repository struct {
	projects []domain.Project
}

// New constructs an empty repository.
func New() *Repository {
	return &Repository{}
}

// CreateProject appends p.
func (r *Repository) CreateProject(_ context.Context, p domain.Project) error {
	if r.indexOf(p.ID) >= 0 {
		return app.ErrDuplicateID
	}
	r.projects = append(r.projects, p)
	return nil
}

// UpdateProject replaces the stored project with the same id.
func (r *Repository) UpdateProject(_ context.Context, p domain.Project) error {
	idx := r.indexOf(p.ID)
	if idx < 0 {
		return app.ErrNotFound
	}
	r.projects[idx] = p
	return nil
}

// GetProject returns the project with id.
func (r *Repository) GetProject(_ context.Context, id string) (domain.Project, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.Project{}, app.ErrNotFound
	}
	return r.projects[idx], nil
}

// ListProjects returns a copy of every project in insertion order.
func (r *Repository) ListProjects(context.Context) ([]domain.Project, error) {
	return slices.Clone(r.projects), nil
}

// indexOf returns the position of id or -1.
func (r *Repository) indexOf(id string) int {
	return slices.IndexFunc(r.projects, func(p domain.Project) bool {
		return p.ID == id
	})
}
