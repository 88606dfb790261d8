// Package fs implements the output writer: rendered pages persisted as
// Markdown files under the configured output root.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// Config holds the configuration for the filesystem writer.
type Config struct {
	// Root is the output directory the SSG build consumes.
	Root string
	// VerifyFrontMatter makes Audit check that every output file opens
	// with a parseable front-matter block. Disable for template formats
	// with non-standard fences.
	VerifyFrontMatter bool
	Logger            *slog.Logger
}

// Writer implements core.Writer on the local filesystem. Overwrite is
// unconditional; the only concession is skipping the physical write when
// the existing file already has identical content.
type Writer struct {
	Root   string
	config Config

	mu        sync.RWMutex
	written   int
	unchanged int
}

// NewWriter creates a filesystem-backed writer.
func NewWriter(config Config) *Writer {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Writer{Root: config.Root, config: config}
}

var _ core.Writer = (*Writer)(nil)

// Initialize ensures the output root exists.
func (w *Writer) Initialize(ctx context.Context) error {
	if w.Root == "" {
		return &core.WriteError{Path: "", Err: fmt.Errorf("output root not configured")}
	}
	if err := os.MkdirAll(w.Root, 0755); err != nil {
		return &core.WriteError{Path: w.Root, Err: err}
	}
	return nil
}

// Write persists one rendered page at Root/TargetPath, creating
// intermediate directories as needed.
func (w *Writer) Write(ctx context.Context, page core.RenderedPage, data []byte) (core.WriteStatus, error) {
	if err := ctx.Err(); err != nil {
		return 0, &core.WriteError{Path: page.TargetPath, Err: err}
	}

	path, err := w.resolve(page.TargetPath)
	if err != nil {
		return 0, &core.WriteError{Path: page.TargetPath, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, &core.WriteError{Path: page.TargetPath, Err: err}
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		w.config.Logger.Debug("content unchanged, skipping write", "path", page.TargetPath)
		w.count(core.StatusUnchanged)
		return core.StatusUnchanged, nil
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return 0, &core.WriteError{Path: page.TargetPath, Err: err}
	}

	w.count(core.StatusWritten)
	return core.StatusWritten, nil
}

// resolve joins the target path under the root and rejects anything that
// would escape it.
func (w *Writer) resolve(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("empty target path")
	}
	path := filepath.Join(w.Root, filepath.FromSlash(target))

	rootAbs, err := filepath.Abs(w.Root)
	if err != nil {
		return "", err
	}
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if pathAbs != rootAbs && !strings.HasPrefix(pathAbs, rootAbs+string(os.PathSeparator)) {
		return "", fmt.Errorf("target path escapes output root")
	}
	return path, nil
}

func (w *Writer) count(status core.WriteStatus) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if status == core.StatusUnchanged {
		w.unchanged++
	} else {
		w.written++
	}
}
