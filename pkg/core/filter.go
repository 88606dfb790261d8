package core

// FilterByTag returns exactly the subset of notes whose tag set contains
// tag. Matching is case-sensitive with no partial or prefix matching. An
// empty result is valid and not an error.
func FilterByTag(notes []RawNote, tag string) []RawNote {
	var out []RawNote
	for _, n := range notes {
		if n.HasTag(tag) {
			out = append(out, n)
		}
	}
	return out
}
