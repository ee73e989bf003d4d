package engine

import (
	"log/slog"

	"github.com/cpcf/loom/pattern"
	"github.com/cpcf/loom/render"
)

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMode(mode render.Mode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// WithWorkers caps parallel renders within one run.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithHelpers replaces the default helper registry.
func WithHelpers(helpers *render.Registry) Option {
	return func(e *Engine) {
		e.helpers = helpers
	}
}

// WithPatterns replaces the default pattern registry.
func WithPatterns(patterns *pattern.Registry) Option {
	return func(e *Engine) {
		e.patterns = patterns
	}
}
