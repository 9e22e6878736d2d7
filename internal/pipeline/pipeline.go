package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// Step is one phase of a run. Steps are executed in sequence; each one
// reads what earlier steps stored on the Run and stores its own output.
type Step interface {
	// Do executes the step.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline. Add steps with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps in order against run. It stops at the first
// failing step, or before the next step once ctx is done, and records the
// error in run.Err as well as returning it. Failures are logged at Debug
// only; reporting them is the caller's job. run.Elapsed covers all steps
// that ran.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	start := time.Now()
	defer func() { run.Elapsed = time.Since(start) }()

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("check cancelled", "root", run.Root, "before", step.Name())
			run.Err = err
			return err
		}

		p.logger.Info("executing step", "step", step.Name(), "root", run.Root)
		stepStart := time.Now()

		if err := step.Do(ctx, run); err != nil {
			p.logger.Debug("step failed", "step", step.Name(), "root", run.Root, "error", err)
			run.Err = err
			return err
		}

		run.PerformedSteps = append(run.PerformedSteps, step.Name())
		p.logger.Debug("step completed",
			"step", step.Name(),
			"root", run.Root,
			"elapsed", time.Since(stepStart),
		)
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
