package core

import "time"

// Metadata represents the front-matter key-value pairs of a rendered page.
type Metadata map[string]any

// RawNote is a note as received from the note source, mapped at the
// boundary into this explicit shape so the core never depends on the
// source client's native representation.
//
// The first line of Body is conventionally the note title.
type RawNote struct {
	ID         string
	Body       string
	Tags       []string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// HasTag reports whether the note carries the tag.
// Matching is case-sensitive and exact.
func (n RawNote) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RenderedPage is the transformer's output: the front matter and body the
// static-site generator expects, plus the path the writer should place the
// file at, relative to the output root.
type RenderedPage struct {
	FrontMatter Metadata
	Body        string
	TargetPath  string
}
