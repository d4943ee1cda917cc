package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewProjectStartsActive(t *testing.T) {
	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.FixedZone("x", 3600))
	p, err := NewProject("p1", "Build shed", "Construct garden shed", 3, now)
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	if p.Status != StatusActive {
		t.Fatalf("expected active status, got %q", p.Status)
	}
	if p.Title != "Build shed" || p.Description != "Construct garden shed" || p.People != 3 {
		t.Fatalf("unexpected project fields %#v", p)
	}
	if p.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC created_at, got %v", p.CreatedAt.Location())
	}
}

func TestNewProjectRequiresID(t *testing.T) {
	if _, err := NewProject("  ", "t", "d", 2, time.Now()); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestProjectSetStatus(t *testing.T) {
	p, err := NewProject("p1", "t", "description", 2, time.Now())
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	if err := p.SetStatus(StatusFinished); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if p.Status != StatusFinished {
		t.Fatalf("expected finished status, got %q", p.Status)
	}
	if err := p.SetStatus("archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if p.Status != StatusFinished {
		t.Fatalf("expected status unchanged after rejected update, got %q", p.Status)
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("  Finished ")
	if err != nil {
		t.Fatalf("ParseStatus() error = %v", err)
	}
	if got != StatusFinished {
		t.Fatalf("unexpected status %q", got)
	}
	if _, err := ParseStatus(""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for empty input, got %v", err)
	}
}

func TestPeopleLabelAndHeading(t *testing.T) {
	one := Project{People: 1}
	if got := one.PeopleLabel(); got != "1 person" {
		t.Fatalf("unexpected singular label %q", got)
	}
	three := Project{People: 3}
	if got := three.PeopleLabel(); got != "3 people" {
		t.Fatalf("unexpected plural label %q", got)
	}
	if got := StatusActive.Heading(); got != "ACTIVE PROJECTS" {
		t.Fatalf("unexpected heading %q", got)
	}
	if got := StatusFinished.Heading(); got != "FINISHED PROJECTS" {
		t.Fatalf("unexpected heading %q", got)
	}
}
