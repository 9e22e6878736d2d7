package pipeline

import (
	"time"

	"github.com/nao1215/linkcheck/internal/linkcheck"
	"github.com/nao1215/linkcheck/internal/model"
	"github.com/nao1215/linkcheck/internal/site"
)

// Run is the state of one check of one output directory.
type Run struct {
	// Root is the output directory being checked.
	Root string

	// Tree is set by the discover step.
	Tree *site.Tree

	// Snapshot is set by the extract step.
	Snapshot *linkcheck.Snapshot

	// Result is set by the validate step.
	Result *model.Result

	// Err is the error that stopped the run, if any.
	Err error

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string

	// Elapsed is the wall time spent executing the pipeline.
	Elapsed time.Duration
}

// NewRun creates the state for checking root.
func NewRun(root string) *Run {
	return &Run{
		Root:           root,
		PerformedSteps: make([]string, 0),
	}
}
