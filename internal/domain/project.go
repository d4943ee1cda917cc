package domain

import (
	"strconv"
	"strings"
	"time"
)

// Project represents one unit of user-entered work on the board.
type Project struct {
	ID          string
	Title       string
	Description string
	People      int
	Status      Status
	CreatedAt   time.Time
}

// NewProject constructs an active project.
func NewProject(id, title, description string, people int, now time.Time) (Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Project{}, ErrInvalidID
	}
	return Project{
		ID:          id,
		Title:       title,
		Description: description,
		People:      people,
		Status:      StatusActive,
		CreatedAt:   now.UTC(),
	}, nil
}

// SetStatus moves the project to another status. Status is the only mutable field.
func (p *Project) SetStatus(status Status) error {
	status, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	p.Status = status
	return nil
}

// PeopleLabel returns the pluralized people count, e.g. "1 person" or "3 people".
func (p Project) PeopleLabel() string {
	if p.People == 1 {
		return "1 person"
	}
	return strconv.Itoa(p.People) + " people"
}
