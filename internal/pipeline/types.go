// Package pipeline describes the progress events emitted while the
// driver compiles a batch of files, independent of how those events are
// consumed (a plain writer, a Bubble Tea progress bar, or nothing).
package pipeline

import "time"

// Stage names one phase of the per-file compilation pipeline.
type Stage string

const (
	// StageTokenize covers source text to token stream.
	StageTokenize Stage = "tokenize"
	// StageParse covers token stream to Functions.
	StageParse Stage = "parse"
	// StageValidate covers type-checking and scope resolution.
	StageValidate Stage = "validate"
	// StageCodegen covers textual IR emission.
	StageCodegen Stage = "codegen"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker slot.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is in progress.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished successfully.
	StatusDone Status = "done"
	// StatusError indicates the file's pipeline aborted with an error.
	StatusError Status = "error"
)

// Event reports progress for one file's pipeline, or for the overall
// batch when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events as the batch driver advances
// each file through the pipeline.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds per-stage durations for a single file's compilation.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
