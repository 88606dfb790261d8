package core

import (
	"fmt"
	"strings"
)

// ExpandContinuous splits container notes into one note per body line.
//
// A continuous note is a single note whose body accumulates short entries,
// one per non-empty line. When it carries the tag named by spec (in
// "tag:replacement" form), each entry becomes its own note titled
// "<title> - N", N counting down so the oldest entry gets 1. The entries
// inherit the container's tags with the continuous tag swapped for the
// replacement; the container itself is dropped. Notes without the tag pass
// through untouched, as does everything when spec is empty.
func ExpandContinuous(notes []RawNote, spec string) []RawNote {
	if spec == "" {
		return notes
	}
	tag, replacement, _ := strings.Cut(spec, ":")

	out := make([]RawNote, 0, len(notes))
	for _, n := range notes {
		if !n.HasTag(tag) {
			out = append(out, n)
			continue
		}
		out = append(out, splitContinuous(n, tag, replacement)...)
	}
	return out
}

func splitContinuous(n RawNote, tag, replacement string) []RawNote {
	first, rest, _ := strings.Cut(n.Body, "\n")
	title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(first), "# "))

	var entries []string
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimSpace(line) != "" {
			entries = append(entries, strings.TrimSpace(line))
		}
	}

	tags := swapTag(n.Tags, tag, replacement)
	parts := make([]RawNote, 0, len(entries))
	for i, entry := range entries {
		num := len(entries) - i
		parts = append(parts, RawNote{
			ID:         fmt.Sprintf("%s-%d", n.ID, num),
			Body:       fmt.Sprintf("%s - %d\n\n%s", title, num, entry),
			Tags:       tags,
			CreatedAt:  n.CreatedAt,
			ModifiedAt: n.ModifiedAt,
		})
	}
	return parts
}

func swapTag(tags []string, old, replacement string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == old {
			if replacement != "" {
				out = append(out, replacement)
			}
			continue
		}
		out = append(out, t)
	}
	return out
}
