package core

import (
	"strings"

	"github.com/goliatone/go-slug"
)

const markdownExt = ".md"

// Slugify converts a title into a lowercase, filesystem-safe slug:
// non-alphanumeric runs collapse into a single hyphen, with no leading or
// trailing separator. The result is empty when nothing usable remains.
func Slugify(title string) string {
	s, err := slug.Normalize(title)
	if err != nil {
		s = title
	}
	return collapse(s)
}

// collapse enforces the slug contract on an already-normalized string.
func collapse(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// DerivePath computes the deterministic output path for a note: the title
// slug, optionally prefixed by the creation date, with the Markdown
// extension. The note ID backs the slug when the title normalizes to
// nothing, so distinct notes keep distinct paths.
func (t *Transformer) DerivePath(n RawNote, title string) string {
	s := Slugify(title)
	if s == "" {
		s = Slugify(n.ID)
	}
	if s == "" {
		s = "untitled"
	}
	if t.cfg.DatePrefix {
		s = n.CreatedAt.Format("2006-01-02") + "-" + s
	}
	return s + markdownExt
}
