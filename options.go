package sn2ssg

import (
	"log/slog"

	"github.com/sn2ssg/sn2ssg/pkg/core"
	"github.com/sn2ssg/sn2ssg/pkg/notify"
)

// options holds the internal configuration for the pipeline wiring.
type options struct {
	logger   *slog.Logger
	source   core.Source
	renderer core.Renderer
	writer   core.Writer
	notifier notify.Notifier
}

// Option defines a functional option for wiring the pipeline.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource injects a custom note source (e.g. fixtures in tests).
// If provided, the default sncli adapter is skipped.
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithRenderer injects a custom renderer, overriding the configured
// front-matter format.
func WithRenderer(r core.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithWriter injects a custom output writer.
func WithWriter(w core.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithNotifier injects a custom notifier, overriding the Gotify
// configuration.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}
