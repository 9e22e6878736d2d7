package report

import (
	"io"
	"strconv"

	"github.com/nao1215/linkcheck/internal/config"
	"github.com/nao1215/linkcheck/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.Result) (int, error)
}

// ForConfig returns the writer selected by the report flags of cfg.
func ForConfig(output io.Writer, cfg *config.Config, version string) Writer {
	switch {
	case cfg.JSONReport:
		return NewJSONWriter(output, WithPrettyPrint(), WithVersion(version))
	case cfg.MarkdownReport:
		return NewMarkdownWriter(output, WithMarkdownMaxReferrers(cfg.MaxReferrers))
	default:
		return NewSimpleWriter(output, WithMaxReferrers(cfg.MaxReferrers))
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// limitReferrers returns the referrers to print and how many were left
// out. A negative limit keeps every referrer.
func limitReferrers(referrers []string, limit int) ([]string, int) {
	if limit < 0 || len(referrers) <= limit {
		return referrers, 0
	}
	return referrers[:limit], len(referrers) - limit
}

// plural returns "1 link" or "2 links".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
