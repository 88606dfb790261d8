package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// PipelineState exposes internal state for observability.
type PipelineState struct {
	Tag           string     `json:"tag"`
	ContinuousTag string     `json:"continuous_tag,omitempty"`
	LastRun       *time.Time `json:"last_run,omitempty"`
	LastFetched   int        `json:"last_fetched"`
	LastWritten   int        `json:"last_written"`
	LastFailures  int        `json:"last_failures"`
}

// State implements introspection.Introspectable.
func (p *Pipeline) State() any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := PipelineState{
		Tag:           p.cfg.Tag,
		ContinuousTag: p.cfg.ContinuousTag,
		LastRun:       p.lastRun,
	}
	if p.lastRept != nil {
		state.LastFetched = p.lastRept.Fetched
		state.LastWritten = p.lastRept.Written
		state.LastFailures = len(p.lastRept.Failures)
	}
	return state
}

// ComponentType implements introspection.Component.
func (p *Pipeline) ComponentType() string {
	return "pipeline"
}

var _ introspection.Introspectable = (*Pipeline)(nil)
var _ introspection.Component = (*Pipeline)(nil)
