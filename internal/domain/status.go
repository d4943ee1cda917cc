package domain

import (
	"fmt"
	"strings"
)

// Status is the board list a project belongs to.
type Status string

// StatusActive and StatusFinished are the only project states.
const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Statuses lists every status in board order.
func Statuses() []Status {
	return []Status{StatusActive, StatusFinished}
}

// ParseStatus normalizes raw text into a known status.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive, nil
	case StatusFinished:
		return StatusFinished, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Heading returns the list heading shown for a status, e.g. "ACTIVE PROJECTS".
func (s Status) Heading() string {
	return strings.ToUpper(string(s)) + " PROJECTS"
}
