package sncli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// Retry defaults, matching the deployment surface the adapter inherited.
const (
	DefaultMaxRetries = 5
	DefaultBaseDelay  = 1 * time.Second
	DefaultMaxDelay   = 5 * time.Minute
)

// RetryConfig bounds the exponential backoff around a dump cycle.
type RetryConfig struct {
	// MaxRetries is the total number of attempts.
	MaxRetries int
	// BaseDelay is the initial backoff interval; it grows exponentially
	// with +/-25% jitter up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	return c
}

// Source implements core.Source over sncli dumps. Every fetch re-dumps
// the full tag; nothing is cached between runs.
type Source struct {
	client *Client
	tag    string
	retry  RetryConfig
	logger *slog.Logger
}

// NewSource creates a source that dumps notes carrying tag.
func NewSource(client *Client, tag string, retry RetryConfig, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{client: client, tag: tag, retry: retry.withDefaults(), logger: logger}
}

var _ core.Source = (*Source)(nil)

// FetchAll dumps, parses, and validates notes, retrying the whole cycle
// with exponential backoff. Validation guards against partial sncli
// syncs: a dump where any note lacks the publication tag is re-dumped
// rather than trusted.
func (s *Source) FetchAll(ctx context.Context) ([]core.RawNote, error) {
	var notes []core.RawNote
	attempt := 0

	cycle := func() error {
		attempt++
		s.logger.Info("fetching notes", "attempt", attempt, "max", s.retry.MaxRetries, "tag", s.tag)

		dump, err := s.client.Dump(ctx, s.tag)
		if err != nil {
			s.logger.Warn("dump failed", "attempt", attempt, "error", err)
			return err
		}

		parsed, err := Parse(dump)
		if err != nil {
			s.logger.Warn("dump unparseable", "attempt", attempt, "error", err)
			return err
		}

		if err := s.validate(parsed); err != nil {
			s.logger.Warn("dump failed validation", "attempt", attempt, "error", err)
			return err
		}

		notes = parsed
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retry.BaseDelay
	policy.MaxInterval = s.retry.MaxDelay
	policy.RandomizationFactor = 0.25
	policy.MaxElapsedTime = 0

	retries := uint64(s.retry.MaxRetries - 1)
	if err := backoff.Retry(cycle, backoff.WithMaxRetries(backoff.WithContext(policy, ctx), retries)); err != nil {
		return nil, fmt.Errorf("after %d attempts: %w", attempt, err)
	}

	s.logger.Info("fetched notes", "count", len(notes), "attempts", attempt)
	return notes, nil
}

func (s *Source) validate(notes []core.RawNote) error {
	for _, n := range notes {
		if !n.HasTag(s.tag) {
			return fmt.Errorf("note %q is missing required tag %q", n.ID, s.tag)
		}
	}
	return nil
}
