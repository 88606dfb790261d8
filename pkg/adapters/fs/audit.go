package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
)

// Audit reconciles the output tree with a finished run: the Markdown
// files on disk must cover the pages the run produced, and (when
// configured) each file must open with a parseable front-matter block.
// The output root may legitimately hold more files than the run produced,
// from earlier runs with different tag sets.
func (w *Writer) Audit(expected int) error {
	matches, err := doublestar.Glob(os.DirFS(w.Root), "**/*.md")
	if err != nil {
		return fmt.Errorf("glob output root: %w", err)
	}

	if len(matches) < expected {
		return fmt.Errorf("output mismatch: run produced %d pages but %d markdown files exist under %s",
			expected, len(matches), w.Root)
	}

	if !w.config.VerifyFrontMatter {
		return nil
	}

	for _, match := range matches {
		if err := w.verifyFrontMatter(match); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) verifyFrontMatter(rel string) error {
	f, err := os.Open(filepath.Join(w.Root, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("audit %s: %w", rel, err)
	}
	defer f.Close()

	var meta map[string]any
	if _, err := frontmatter.Parse(f, &meta); err != nil {
		return fmt.Errorf("audit %s: invalid front matter: %w", rel, err)
	}
	if len(meta) == 0 {
		return fmt.Errorf("audit %s: missing front matter", rel)
	}
	return nil
}
