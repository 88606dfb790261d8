package fs

import (
	"github.com/aretw0/introspection"
)

// WriterState exposes internal state for observability.
type WriterState struct {
	Root              string `json:"root"`
	Written           int    `json:"written"`
	Unchanged         int    `json:"unchanged"`
	VerifyFrontMatter bool   `json:"verify_front_matter"`
}

// State implements introspection.Introspectable.
func (w *Writer) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return WriterState{
		Root:              w.Root,
		Written:           w.written,
		Unchanged:         w.unchanged,
		VerifyFrontMatter: w.config.VerifyFrontMatter,
	}
}

// ComponentType implements introspection.Component.
func (w *Writer) ComponentType() string {
	return "writer"
}

var _ introspection.Introspectable = (*Writer)(nil)
var _ introspection.Component = (*Writer)(nil)
