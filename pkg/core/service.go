package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PipelineConfig carries the run-level settings of the pipeline.
type PipelineConfig struct {
	// Tag is the publication tag gating notes into the run.
	Tag string
	// ContinuousTag, when set ("tag:replacement"), enables continuous
	// note expansion before filtering.
	ContinuousTag string
	Logger        *slog.Logger
}

// Pipeline runs the note-to-page conversion: fetch, filter, transform,
// render, write. Notes are processed sequentially in collection order, so
// when two notes resolve to the same output path the last one wins.
type Pipeline struct {
	source      Source
	transformer *Transformer
	renderer    Renderer
	writer      Writer
	cfg         PipelineConfig

	mu       sync.RWMutex
	lastRun  *time.Time
	lastRept *Report
}

// NewPipeline wires the pipeline from its collaborators.
func NewPipeline(src Source, tr *Transformer, r Renderer, w Writer, cfg PipelineConfig) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pipeline{
		source:      src,
		transformer: tr,
		renderer:    r,
		writer:      w,
		cfg:         cfg,
	}
}

// Run executes one conversion cycle.
//
// A source failure is fatal: it is returned immediately, wrapped in
// ErrFetchFailed, and no output is produced. Per-note failures are
// recorded in the report and the run continues with the next note.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	notes, err := p.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	notes = ExpandContinuous(notes, p.cfg.ContinuousTag)
	published := FilterByTag(notes, p.cfg.Tag)

	report := &Report{Fetched: len(notes), Published: len(published)}
	p.cfg.Logger.Info("run started", "fetched", report.Fetched, "published", report.Published, "tag", p.cfg.Tag)

	seen := make(map[string]string, len(published))
	for _, n := range published {
		if err := ctx.Err(); err != nil {
			p.record(report)
			return report, err
		}
		p.process(ctx, n, report, seen)
	}

	p.record(report)
	p.cfg.Logger.Info("run finished",
		"written", report.Written, "unchanged", report.Unchanged, "failed", len(report.Failures))
	return report, nil
}

func (p *Pipeline) process(ctx context.Context, n RawNote, report *Report, seen map[string]string) {
	page, err := p.transformer.Transform(n)
	if err != nil {
		p.cfg.Logger.Warn("transform failed", "note", n.ID, "error", err)
		report.fail(n.ID, StageTransform, err)
		return
	}

	if prev, ok := seen[page.TargetPath]; ok {
		p.cfg.Logger.Warn("output path collision, last write wins",
			"path", page.TargetPath, "previous", prev, "note", n.ID)
	}
	seen[page.TargetPath] = n.ID

	data, err := p.renderer.Render(page)
	if err != nil {
		rerr := &RenderError{NoteID: n.ID, Err: err}
		p.cfg.Logger.Warn("render failed", "note", n.ID, "error", rerr)
		report.fail(n.ID, StageRender, rerr)
		return
	}

	status, err := p.writer.Write(ctx, page, data)
	if err != nil {
		p.cfg.Logger.Warn("write failed", "note", n.ID, "path", page.TargetPath, "error", err)
		report.fail(n.ID, StageWrite, err)
		return
	}

	report.page(page.TargetPath)
	switch status {
	case StatusUnchanged:
		report.Unchanged++
		p.cfg.Logger.Debug("unchanged", "path", page.TargetPath)
	default:
		report.Written++
		p.cfg.Logger.Info("wrote page", "path", page.TargetPath, "note", n.ID)
	}
}

func (p *Pipeline) record(report *Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.lastRun = &now
	p.lastRept = report
}
