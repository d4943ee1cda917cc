package tui

import (
	"context"

	"github.com/evanschultz/plank/internal/board"
)

// Option configures a Model before its views are mounted.
type Option func(*Model)

// WithFormConfig sets the validation rules of the project form.
func WithFormConfig(cfg board.FormConfig) Option {
	return func(m *Model) {
		m.formConfig = cfg
	}
}

// WithShowDescriptions toggles the description line on cards.
func WithShowDescriptions(show bool) Option {
	return func(m *Model) {
		m.showDescriptions = show
	}
}

// WithKeyConfig applies key overrides.
func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

// WithContext sets the context passed to store calls.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithClipboard replaces the clipboard writer used by the copy action.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyToClipboard = write
		}
	}
}
