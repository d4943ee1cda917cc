package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/evanschultz/plank/internal/domain"
)

// maxIDAttempts bounds id regeneration when a generated id collides.
const maxIDAttempts = 3

// IDGenerator returns unique identifiers for new projects.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Listener receives a private copy of the full project sequence after every mutation.
type Listener func([]domain.Project)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger routes store mutation logs to logger.
func WithLogger(logger *charmLog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the authoritative project collection for one board session.
// It is not safe for concurrent use; callers drive it from a single event loop.
type Store struct {
	repo      Repository
	idGen     IDGenerator
	clock     Clock
	logger    *charmLog.Logger
	listeners []Listener
}

// NewStore constructs a store over repo.
func NewStore(repo Repository, idGen IDGenerator, clock Clock, opts ...StoreOption) *Store {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	s := &Store{
		repo:   repo,
		idGen:  idGen,
		clock:  clock,
		logger: charmLog.New(io.Discard),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddProjectInput holds the values of a new project.
type AddProjectInput struct {
	Title       string
	Description string
	People      int
}

// Add appends a new active project and notifies every listener.
func (s *Store) Add(ctx context.Context, in AddProjectInput) (domain.Project, error) {
	now := s.clock()
	var (
		project domain.Project
		err     error
	)
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		project, err = domain.NewProject(s.idGen(), in.Title, in.Description, in.People, now)
		if err != nil {
			return domain.Project{}, err
		}
		err = s.repo.CreateProject(ctx, project)
		if !errors.Is(err, ErrDuplicateID) {
			break
		}
		s.logger.Warn("generated project id collided", "id", project.ID, "attempt", attempt+1)
	}
	if err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}
	s.logger.Debug("project added", "id", project.ID, "people", project.People)
	if err := s.notify(ctx); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// Move sets the status of the project with id. Unknown ids are ignored.
func (s *Store) Move(ctx context.Context, id string, status domain.Status) error {
	status, err := domain.ParseStatus(string(status))
	if err != nil {
		return err
	}
	project, err := s.repo.GetProject(ctx, id)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("move ignored for unknown project", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get project %q: %w", id, err)
	}
	from := project.Status
	if err := project.SetStatus(status); err != nil {
		return err
	}
	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return fmt.Errorf("update project %q: %w", id, err)
	}
	s.logger.Debug("project moved", "id", id, "from", from, "to", status)
	return s.notify(ctx)
}

// Subscribe registers listener. Listeners run in registration order.
func (s *Store) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	s.listeners = append(s.listeners, listener)
}

// Projects returns a copy of the current project sequence.
func (s *Store) Projects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Has reports whether id names a stored project.
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetProject(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("get project %q: %w", id, err)
	}
}

// notify hands every listener its own snapshot of the sequence.
func (s *Store) notify(ctx context.Context) error {
	if len(s.listeners) == 0 {
		return nil
	}
	projects, err := s.Projects(ctx)
	if err != nil {
		return err
	}
	for _, listener := range s.listeners {
		listener(slices.Clone(projects))
	}
	return nil
}
