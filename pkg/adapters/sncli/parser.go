package sncli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// DumpDateLayout is the timestamp format sncli prints in note headers.
const DumpDateLayout = "Mon, 02 Jan 2006 15:04:05"

// headerField matches one `| Key: Value |` line of a note header table.
var headerField = regexp.MustCompile(`^\|\s*(.*?):\s*(.*?)\s*\|`)

// syncLogMarkers identify the sync chatter sncli mixes into a dump.
var syncLogMarkers = []string{
	"sncli database doesn't exist",
	"Starting full sync",
	"Synced new note from server",
	"Saved note to disk",
	"Full sync completed",
}

// Parse converts a full sncli dump into raw notes. A dump that yields no
// notes is an error: it means sncli returned nothing usable, not that the
// tag matched nothing (sncli dump only emits tagged notes).
func Parse(dump string) ([]core.RawNote, error) {
	lines := stripSyncLog(strings.Split(dump, "\n"))

	var notes []core.RawNote
	for _, group := range splitNotes(lines) {
		if !hasHeader(group) {
			continue
		}
		note, err := parseNote(group)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if len(notes) == 0 {
		return nil, fmt.Errorf("dump contains no notes")
	}
	return notes, nil
}

// stripSyncLog drops the log lines sncli prints while syncing.
func stripSyncLog(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		logLine := false
		for _, marker := range syncLogMarkers {
			if strings.Contains(line, marker) {
				logLine = true
				break
			}
		}
		if !logLine {
			out = append(out, line)
		}
	}
	return out
}

// splitNotes cuts the dump into per-note line groups. Header tables are
// fenced by `+---...---+` lines; a fence seen after a complete header
// starts the next note.
func splitNotes(lines []string) [][]string {
	var (
		groups      [][]string
		note        []string
		headerStart bool
		headerEnd   bool
	)

	for _, line := range lines {
		fence := strings.HasSuffix(line, "-+")
		if fence && headerStart && headerEnd {
			groups = append(groups, note)
			note = []string{line}
			headerEnd = false
			continue
		}
		if fence {
			if !headerStart {
				headerStart = true
			} else if !headerEnd {
				headerEnd = true
			}
		}
		note = append(note, line)
	}

	// The loop only flushes on the next header, so the last note needs an
	// explicit flush.
	groups = append(groups, note)
	return groups
}

func hasHeader(group []string) bool {
	for _, line := range group {
		if headerField.MatchString(line) {
			return true
		}
	}
	return false
}

// parseNote extracts the header fields and body from one note group and
// maps them into the core's note shape: the title becomes the body's
// first line, with a duplicated `# Title` heading removed.
func parseNote(group []string) (core.RawNote, error) {
	var title, key, dateStr string
	var tags []string

	var body []string
	for _, line := range group {
		if isHeaderLine(line) {
			m := headerField.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			switch m[1] {
			case "Title":
				title = strings.ReplaceAll(m[2], "#", "")
			case "Key":
				key = m[2]
			case "Date":
				dateStr = m[2]
			case "Tags":
				for _, t := range strings.Split(m[2], ",") {
					if t = strings.TrimSpace(t); t != "" {
						tags = append(tags, t)
					}
				}
			}
			continue
		}
		body = append(body, line)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return core.RawNote{}, fmt.Errorf("note header has no title")
	}

	created, err := time.Parse(DumpDateLayout, dateStr)
	if err != nil {
		return core.RawNote{}, fmt.Errorf("note %q: parse date %q: %w", title, dateStr, err)
	}

	if key == "" {
		key = core.Slugify(title)
	}

	return core.RawNote{
		ID:         key,
		Body:       title + "\n\n" + cleanBody(body, title),
		Tags:       tags,
		CreatedAt:  created,
		ModifiedAt: created,
	}, nil
}

func isHeaderLine(line string) bool {
	return strings.HasPrefix(line, "|") || strings.HasSuffix(line, "|") || strings.HasPrefix(line, "+-")
}

// cleanBody trims surrounding blank lines and drops a leading `# Title`
// heading, which would otherwise render the title twice.
func cleanBody(lines []string, title string) string {
	body := strings.TrimSpace(strings.Join(lines, "\n"))
	if first, rest, found := strings.Cut(body, "\n"); found || first != "" {
		if strings.TrimSpace(strings.TrimPrefix(first, "# ")) == title && strings.HasPrefix(first, "# ") {
			body = strings.TrimLeft(rest, "\n")
		}
	}
	return body
}
