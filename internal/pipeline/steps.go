package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/linkcheck/internal/config"
	"github.com/nao1215/linkcheck/internal/extract"
	"github.com/nao1215/linkcheck/internal/linkcheck"
	"github.com/nao1215/linkcheck/internal/site"
)

// ErrStepOrder is returned when a step runs before the step it depends on.
var ErrStepOrder = errors.New("pipeline step is missing its input")

// DiscoverStep walks the output directory.
type DiscoverStep struct {
	caseInsensitive bool
	logger          *slog.Logger
}

// NewDiscoverStep creates the discover step.
func NewDiscoverStep(caseInsensitive bool, logger *slog.Logger) *DiscoverStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscoverStep{caseInsensitive: caseInsensitive, logger: logger}
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do executes the discover step.
func (s *DiscoverStep) Do(_ context.Context, run *Run) error {
	tree, err := site.Discover(run.Root, site.WithCaseInsensitive(s.caseInsensitive))
	if err != nil {
		return err
	}
	run.Tree = tree

	s.logger.Debug("discovered pages",
		"root", run.Root,
		"pages", len(tree.Pages),
		"forms", tree.Paths.Len(),
		"caseInsensitive", tree.Paths.CaseInsensitive(),
	)
	return nil
}

// ExtractStep reads every discovered page into a Snapshot.
type ExtractStep struct {
	collector *linkcheck.Collector
}

// NewExtractStep creates the extract step.
func NewExtractStep(collector *linkcheck.Collector) *ExtractStep {
	return &ExtractStep{collector: collector}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do executes the extract step.
func (s *ExtractStep) Do(ctx context.Context, run *Run) error {
	if run.Tree == nil {
		return fmt.Errorf("%w: extract needs discover", ErrStepOrder)
	}
	snap, err := s.collector.Collect(ctx, run.Tree)
	if err != nil {
		return err
	}
	run.Snapshot = snap
	return nil
}

// ValidateStep validates the Snapshot.
type ValidateStep struct{}

// NewValidateStep creates the validate step.
func NewValidateStep() *ValidateStep {
	return &ValidateStep{}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do executes the validate step.
func (s *ValidateStep) Do(_ context.Context, run *Run) error {
	if run.Snapshot == nil {
		return fmt.Errorf("%w: validate needs extract", ErrStepOrder)
	}
	run.Result = linkcheck.Validate(run.Snapshot)
	return nil
}

// NewExtractor returns the extractor selected by the parser name.
func NewExtractor(parser string) extract.Extractor {
	if parser == config.ParserStream {
		return extract.NewStreamExtractor()
	}
	return extract.NewHTMLExtractor()
}

// DefaultPipeline builds the discover, extract and validate pipeline for cfg.
func DefaultPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	collector := linkcheck.NewCollector(
		linkcheck.WithExtractor(NewExtractor(cfg.Parser)),
		linkcheck.WithConcurrency(cfg.Concurrency),
		linkcheck.WithIgnorePatterns(cfg.IgnorePatterns),
		linkcheck.WithLogger(logger),
	)

	p := New(WithLogger(logger))
	p.AddSteps(
		NewDiscoverStep(cfg.CaseInsensitive, logger),
		NewExtractStep(collector),
		NewValidateStep(),
	)
	return p
}
