package core

import (
	"errors"
	"fmt"
)

// ErrFetchFailed marks a note source failure. Unlike per-note errors it
// aborts the whole run before any output is produced.
var ErrFetchFailed = errors.New("note source fetch failed")

// MalformedNoteError reports a note whose body cannot be transformed
// (empty, or missing a title line). It is recorded per note; the run
// continues.
type MalformedNoteError struct {
	NoteID string
	Reason string
}

func (e *MalformedNoteError) Error() string {
	return fmt.Sprintf("malformed note %q: %s", e.NoteID, e.Reason)
}

// RenderError wraps a serialization or template failure for one note.
type RenderError struct {
	NoteID string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render note %q: %v", e.NoteID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// WriteError wraps a filesystem failure for one output path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
