package core

// Stage identifies where in the pipeline a per-note failure occurred.
type Stage string

const (
	StageTransform Stage = "transform"
	StageRender    Stage = "render"
	StageWrite     Stage = "write"
)

// NoteFailure records one per-note error. Failures never abort the run;
// they are collected and surfaced at the end.
type NoteFailure struct {
	NoteID string
	Stage  Stage
	Err    error
}

// Report summarizes one pipeline run.
type Report struct {
	// Fetched counts every note the source returned, after continuous
	// notes were expanded.
	Fetched int
	// Published counts the notes that passed the tag filter.
	Published int
	// Written counts files created or replaced on disk.
	Written int
	// Unchanged counts pages whose file already had identical content.
	Unchanged int
	// Failures holds the per-note errors, in collection order.
	Failures []NoteFailure

	paths map[string]struct{}
}

// Processed is the number of pages that made it to disk, changed or not.
func (r *Report) Processed() int {
	return r.Written + r.Unchanged
}

// Pages is the number of distinct output paths on disk after the run.
// Colliding notes share a path, so this can be lower than Processed.
func (r *Report) Pages() int {
	return len(r.paths)
}

func (r *Report) page(path string) {
	if r.paths == nil {
		r.paths = make(map[string]struct{})
	}
	r.paths[path] = struct{}{}
}

func (r *Report) fail(id string, stage Stage, err error) {
	r.Failures = append(r.Failures, NoteFailure{NoteID: id, Stage: stage, Err: err})
}
