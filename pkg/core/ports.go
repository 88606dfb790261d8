package core

import "context"

// Source supplies the raw notes for one pipeline run. Adhering to this
// interface keeps the core independent of the note store's client
// (sncli subprocess, HTTP API, fixtures in tests).
type Source interface {
	// FetchAll returns every note visible to the configured credentials.
	FetchAll(ctx context.Context) ([]RawNote, error)
}

// Renderer materializes the final file content from front matter plus
// body. It owns only the serialization format; the transformer owns field
// selection and values.
type Renderer interface {
	Render(page RenderedPage) ([]byte, error)
}

// WriteStatus describes the outcome of persisting one page.
type WriteStatus int

const (
	// StatusWritten means the file was created or its content replaced.
	StatusWritten WriteStatus = iota
	// StatusUnchanged means an identical file already existed and the
	// physical write was skipped.
	StatusUnchanged
)

// Writer persists rendered pages under the output root.
type Writer interface {
	Write(ctx context.Context, page RenderedPage, data []byte) (WriteStatus, error)
}
