// Package notify delivers out-of-band run notifications.
package notify

import "context"

// Notifier pushes a short message about a run outcome.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Noop discards notifications. It stands in when no notification backend
// is configured.
type Noop struct{}

func (Noop) Notify(ctx context.Context, title, message string) error { return nil }

var _ Notifier = Noop{}
