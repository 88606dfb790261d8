package sn2ssg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sn2ssg/sn2ssg/pkg/adapters/fs"
	"github.com/sn2ssg/sn2ssg/pkg/adapters/sncli"
	"github.com/sn2ssg/sn2ssg/pkg/core"
	"github.com/sn2ssg/sn2ssg/pkg/notify"
	"github.com/sn2ssg/sn2ssg/pkg/render"
)

// Version exposes the version of the tool. Overridden at build time via
// -ldflags "-X github.com/sn2ssg/sn2ssg.Version=...".
var Version = "dev"

// components is the fully wired object graph for one configuration.
type components struct {
	pipeline *core.Pipeline
	writer   core.Writer
	notifier notify.Notifier
	logger   *slog.Logger
}

func build(cfg Config, opts ...Option) (*components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = cfg.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	source := o.source
	if source == nil {
		client := sncli.NewClient(cfg.SncliPath, logger)
		source = sncli.NewSource(client, cfg.Tag, sncli.RetryConfig{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.baseDelay(),
			MaxDelay:   cfg.maxDelay(),
		}, logger)
	}

	renderer := o.renderer
	if renderer == nil {
		r, err := render.New(cfg.Format, cfg.TemplatePath)
		if err != nil {
			return nil, err
		}
		renderer = r
	}

	writer := o.writer
	if writer == nil {
		writer = fs.NewWriter(fs.Config{
			Root:              cfg.OutputDir,
			VerifyFrontMatter: cfg.Format != render.FormatTemplate,
			Logger:            logger,
		})
	}

	notifier := o.notifier
	if notifier == nil {
		if cfg.Gotify.URL != "" && cfg.Gotify.Token != "" {
			notifier = notify.NewGotify(cfg.Gotify.URL, cfg.Gotify.Token, logger)
		} else {
			notifier = notify.Noop{}
		}
	}

	transformer := core.NewTransformer(core.TransformConfig{
		PublicationTag:     cfg.Tag,
		IncludeControlTag:  cfg.IncludeControlTag,
		IgnoreTags:         cfg.IgnoreTags,
		UnlistedTags:       cfg.UnlistedTags,
		TitleSubstitutions: cfg.substitutions(),
		DateFormat:         cfg.DateFormat,
		DatePrefix:         cfg.DatePrefix,
		FallbackTag:        cfg.FallbackTag,
		Author:             cfg.Author,
	})

	pipeline := core.NewPipeline(source, transformer, renderer, writer, core.PipelineConfig{
		Tag:           cfg.Tag,
		ContinuousTag: cfg.ContinuousTag,
		Logger:        logger,
	})

	return &components{
		pipeline: pipeline,
		writer:   writer,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// New wires a Pipeline from the configuration. Options override
// individual collaborators, which keeps the pipeline testable without a
// Simplenote account or a writable disk.
func New(cfg Config, opts ...Option) (*core.Pipeline, error) {
	c, err := build(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return c.pipeline, nil
}

// Run executes one conversion cycle: fetch, filter, transform, render,
// write, audit. Fatal failures are pushed through the configured
// notifier; per-note failures are returned in the report.
func Run(ctx context.Context, cfg Config, opts ...Option) (*core.Report, error) {
	c, err := build(cfg, opts...)
	if err != nil {
		return nil, err
	}

	type initializer interface {
		Initialize(ctx context.Context) error
	}
	if init, ok := c.writer.(initializer); ok {
		if err := init.Initialize(ctx); err != nil {
			c.notify(ctx, "sn2ssg FATAL error", fmt.Sprintf("output root unusable: %v", err))
			return nil, err
		}
	}

	report, err := c.pipeline.Run(ctx)
	if err != nil {
		c.notify(ctx, "sn2ssg FATAL error", fmt.Sprintf("run failed: %v", err))
		return report, err
	}

	type auditor interface {
		Audit(expected int) error
	}
	if a, ok := c.writer.(auditor); ok {
		if err := a.Audit(report.Pages()); err != nil {
			c.notify(ctx, "sn2ssg FATAL error", err.Error())
			return report, err
		}
	}

	if cfg.Debug {
		c.notify(ctx, "sn2ssg successful", fmt.Sprintf(
			"%d notes fetched, %d written, %d unchanged, %d failed",
			report.Fetched, report.Written, report.Unchanged, len(report.Failures)))
	}

	return report, nil
}

func (c *components) notify(ctx context.Context, title, message string) {
	if err := c.notifier.Notify(ctx, title, message); err != nil {
		c.logger.Warn("notification failed", "error", err)
	}
}
