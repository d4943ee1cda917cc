package app

import (
	"context"

	"github.com/evanschultz/plank/internal/domain"
)

// Repository stores projects in insertion order.
type Repository interface {
	CreateProject(context.Context, domain.Project) error
	UpdateProject(context.Context, domain.Project) error
	GetProject(context.Context, string) (domain.Project, error)
	ListProjects(context.Context) ([]domain.Project, error)
}
