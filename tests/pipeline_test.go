package tests

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sn2ssg/sn2ssg"
	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// fixtureSource serves canned notes, standing in for the sncli adapter.
type fixtureSource struct {
	notes []core.RawNote
}

func (s *fixtureSource) FetchAll(ctx context.Context) ([]core.RawNote, error) {
	return s.notes, nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureNotes() []core.RawNote {
	created := time.Date(2023, 9, 1, 2, 33, 35, 0, time.UTC)
	return []core.RawNote{
		{
			ID:        "abc123",
			Body:      "My First Post\n\nHello from the note store.",
			Tags:      []string{"publish", "go"},
			CreatedAt: created,
		},
		{
			ID:        "def456",
			Body:      "A Draft\n\nNot ready yet.",
			Tags:      []string{"draft"},
			CreatedAt: created,
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	out := t.TempDir()
	cfg := sn2ssg.Config{Tag: "publish", OutputDir: out, Logger: quiet()}

	report, err := sn2ssg.Run(context.Background(), cfg,
		sn2ssg.WithSource(&fixtureSource{notes: fixtureNotes()}))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 1, report.Published)
	assert.Equal(t, 1, report.Written)
	assert.Empty(t, report.Failures)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(out, "my-first-post.md"))
	require.NoError(t, err)

	content := string(data)
	assert.True(t, len(content) > 4 && content[:4] == "---\n", "front matter fence missing:\n%s", content)
	assert.Contains(t, content, "title: My First Post")
	assert.Contains(t, content, "2023-09-01T02:33:35+00:00")
	assert.Contains(t, content, "- go")
	assert.Contains(t, content, "Hello from the note store.")
	assert.NotContains(t, content, "publish", "control tag leaked into the page")
}

func TestRunIsIdempotent(t *testing.T) {
	out := t.TempDir()
	cfg := sn2ssg.Config{Tag: "publish", OutputDir: out, Logger: quiet()}
	src := &fixtureSource{notes: fixtureNotes()}

	_, err := sn2ssg.Run(context.Background(), cfg, sn2ssg.WithSource(src))
	require.NoError(t, err)

	before, err := os.ReadFile(filepath.Join(out, "my-first-post.md"))
	require.NoError(t, err)
	stat, err := os.Stat(filepath.Join(out, "my-first-post.md"))
	require.NoError(t, err)

	report, err := sn2ssg.Run(context.Background(), cfg, sn2ssg.WithSource(src))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Written)
	assert.Equal(t, 1, report.Unchanged)

	after, err := os.ReadFile(filepath.Join(out, "my-first-post.md"))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	statAfter, err := os.Stat(filepath.Join(out, "my-first-post.md"))
	require.NoError(t, err)
	assert.Equal(t, stat.ModTime(), statAfter.ModTime(), "unchanged page was rewritten")
}

func TestRunCollisionLastWins(t *testing.T) {
	created := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	notes := []core.RawNote{
		{ID: "a", Body: "Same Title\n\nfirst body", Tags: []string{"publish"}, CreatedAt: created},
		{ID: "b", Body: "Same Title\n\nsecond body", Tags: []string{"publish"}, CreatedAt: created},
	}

	out := t.TempDir()
	cfg := sn2ssg.Config{Tag: "publish", OutputDir: out, Logger: quiet()}

	report, err := sn2ssg.Run(context.Background(), cfg, sn2ssg.WithSource(&fixtureSource{notes: notes}))
	require.NoError(t, err, "colliding notes must not fail the run or its audit")
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, 1, report.Pages())

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(out, "same-title.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "second body")
	assert.NotContains(t, string(data), "first body")
}

func TestRunTOMLFormat(t *testing.T) {
	out := t.TempDir()
	cfg := sn2ssg.Config{Tag: "publish", OutputDir: out, Format: "toml", Logger: quiet()}

	_, err := sn2ssg.Run(context.Background(), cfg, sn2ssg.WithSource(&fixtureSource{notes: fixtureNotes()}))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "my-first-post.md"))
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "+++\n", "TOML fence missing:\n%s", data)
}

func TestRunDatePrefix(t *testing.T) {
	out := t.TempDir()
	cfg := sn2ssg.Config{Tag: "publish", OutputDir: out, DatePrefix: true, Logger: quiet()}

	_, err := sn2ssg.Run(context.Background(), cfg, sn2ssg.WithSource(&fixtureSource{notes: fixtureNotes()}))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "2023-09-01-my-first-post.md"))
	assert.NoError(t, err)
}

func TestRunReportsBadNotes(t *testing.T) {
	created := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	notes := append(fixtureNotes(), core.RawNote{
		ID:        "broken",
		Body:      "   ",
		Tags:      []string{"publish"},
		CreatedAt: created,
	})

	out := t.TempDir()
	cfg := sn2ssg.Config{Tag: "publish", OutputDir: out, Logger: quiet()}

	report, err := sn2ssg.Run(context.Background(), cfg, sn2ssg.WithSource(&fixtureSource{notes: notes}))
	require.NoError(t, err, "per-note failures must not abort the run")
	assert.Equal(t, 1, report.Written)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "broken", report.Failures[0].NoteID)
	assert.Equal(t, core.StageTransform, report.Failures[0].Stage)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := sn2ssg.New(sn2ssg.Config{OutputDir: "out"})
	assert.Error(t, err, "missing tag must be rejected")

	_, err = sn2ssg.New(sn2ssg.Config{Tag: "publish"})
	assert.Error(t, err, "missing output dir must be rejected")

	_, err = sn2ssg.New(sn2ssg.Config{Tag: "publish", OutputDir: "out", Format: "xml"})
	assert.Error(t, err, "unknown format must be rejected")
}
