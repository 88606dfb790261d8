package core

import (
	"regexp"
	"strings"
)

// DefaultDateFormat is the publication date representation most SSGs
// accept out of the box.
const DefaultDateFormat = "2006-01-02T15:04:05+00:00"

// DefaultFallbackTag is used when excluding control tags leaves a note
// with no visible tags at all.
const DefaultFallbackTag = "Uncategorized"

// Substitution rewrites the title into a summary when the note carries
// Find as a tag. The replacement inside the title is case-insensitive.
type Substitution struct {
	Find    string
	Replace string
}

// TransformConfig controls front-matter field selection.
type TransformConfig struct {
	// PublicationTag is the control tag that gated the note in. It is
	// excluded from the visible tag list unless IncludeControlTag is set.
	PublicationTag    string
	IncludeControlTag bool

	// IgnoreTags are further control tags stripped from the visible list.
	IgnoreTags []string

	// UnlistedTags mark a note as unlisted in the rendered front matter.
	UnlistedTags []string

	// TitleSubstitutions derive the optional summary field.
	TitleSubstitutions []Substitution

	// DateFormat is a Go time layout; DefaultDateFormat when empty.
	DateFormat string

	// DatePrefix prepends YYYY-MM-DD- to the derived filename.
	DatePrefix bool

	// FallbackTag replaces an empty visible tag list;
	// DefaultFallbackTag when empty.
	FallbackTag string

	// Author is copied verbatim into the front matter when set.
	Author string
}

// Transformer converts publishable notes into rendered pages. It is a
// pure function of its input and configuration.
type Transformer struct {
	cfg TransformConfig
}

// NewTransformer creates a Transformer, filling configuration defaults.
func NewTransformer(cfg TransformConfig) *Transformer {
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultDateFormat
	}
	if cfg.FallbackTag == "" {
		cfg.FallbackTag = DefaultFallbackTag
	}
	return &Transformer{cfg: cfg}
}

// Transform produces the rendered page for one publishable note.
//
// The first line of the body is the title; everything after it is the
// Markdown body, with a single leading blank line stripped. Content is
// assumed already Markdown-compatible and passes through unmodified.
func (t *Transformer) Transform(n RawNote) (RenderedPage, error) {
	if strings.TrimSpace(n.Body) == "" {
		return RenderedPage{}, &MalformedNoteError{NoteID: n.ID, Reason: "empty body"}
	}

	first, rest, _ := strings.Cut(n.Body, "\n")
	title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(first), "# "))
	if title == "" {
		return RenderedPage{}, &MalformedNoteError{NoteID: n.ID, Reason: "missing title line"}
	}

	body := strings.TrimPrefix(rest, "\r\n")
	if body == rest {
		body = strings.TrimPrefix(rest, "\n")
	}

	visible := t.visibleTags(n.Tags)
	fm := Metadata{
		"title": title,
		"date":  n.CreatedAt.Format(t.cfg.DateFormat),
		"tags":  visible,
		"slug":  pageSlug(n, title),
	}
	if t.cfg.Author != "" {
		fm["author"] = t.cfg.Author
	}
	if t.unlisted(n.Tags) {
		fm["unlisted"] = true
	}
	if summary := t.summary(title, n.Tags); summary != "" {
		fm["summary"] = summary
	}

	return RenderedPage{
		FrontMatter: fm,
		Body:        body,
		TargetPath:  t.DerivePath(n, title),
	}, nil
}

// visibleTags strips control tags, keeping the original order. The
// fallback tag stands in when nothing remains.
func (t *Transformer) visibleTags(tags []string) []string {
	hidden := make(map[string]bool, len(t.cfg.IgnoreTags)+1)
	if !t.cfg.IncludeControlTag {
		hidden[t.cfg.PublicationTag] = true
	}
	for _, tag := range t.cfg.IgnoreTags {
		hidden[tag] = true
	}

	visible := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !hidden[tag] {
			visible = append(visible, tag)
		}
	}
	if len(visible) == 0 {
		visible = append(visible, t.cfg.FallbackTag)
	}
	return visible
}

func (t *Transformer) unlisted(tags []string) bool {
	for _, u := range t.cfg.UnlistedTags {
		for _, tag := range tags {
			if tag == u {
				return true
			}
		}
	}
	return false
}

// summary applies the first substitution whose Find value appears in the
// note's tags, replacing it case-insensitively inside the title.
func (t *Transformer) summary(title string, tags []string) string {
	for _, sub := range t.cfg.TitleSubstitutions {
		if sub.Find == "" {
			continue
		}
		found := false
		for _, tag := range tags {
			if tag == sub.Find {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(sub.Find))
		if err != nil {
			continue
		}
		return re.ReplaceAllLiteralString(title, sub.Replace)
	}
	return ""
}

// pageSlug is the slug front-matter field: date-free, ID-backed.
func pageSlug(n RawNote, title string) string {
	s := Slugify(title)
	if s == "" {
		s = Slugify(n.ID)
	}
	if s == "" {
		s = "untitled"
	}
	return s
}
