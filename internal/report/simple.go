package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/linkcheck/internal/config"
	"github.com/nao1215/linkcheck/internal/model"
)

// SimpleWriter outputs plain text reports.
//
// The layout is a header with counts, one listing per violation kind and a
// final PASS or FAIL line:
//
//	Link check: dist
//	Pages:      12
//	Links:      40 checked, 39 valid, 1 broken
//	Fragments:  8 checked, 8 valid, 0 broken, 0 skipped
//
//	Broken links (1):
//	  /missing
//	    index.html
//
//	FAIL: 1 broken link, 0 broken fragments
type SimpleWriter struct {
	baseWriter

	// maxReferrers limits the pages listed under each link.
	// Negative means no limit.
	maxReferrers int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithMaxReferrers limits the referring pages listed under each broken link.
func WithMaxReferrers(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.maxReferrers = n
	}
}

// WithAllReferrers lists every referring page.
func WithAllReferrers() SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.maxReferrers = -1
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:   newBaseWriter(output),
		maxReferrers: config.DefaultMaxReferrers,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in plain text.
func (w *SimpleWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeViolations(&sb, "Broken links", result.BrokenPaths)
	w.writeViolations(&sb, "Broken fragments", result.BrokenFragments)
	w.writeVerdict(&sb, result)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.Result) {
	fmt.Fprintf(sb, "Link check: %s\n", result.Root)
	fmt.Fprintf(sb, "Pages:      %d\n", result.Pages)
	fmt.Fprintf(sb, "Links:      %d checked, %d valid, %d broken\n",
		result.Links.Total, result.Links.Valid, result.Links.Broken)
	fmt.Fprintf(sb, "Fragments:  %d checked, %d valid, %d broken, %d skipped\n",
		result.Fragments.Total, result.Fragments.Valid, result.Fragments.Broken, result.Fragments.Skipped)
}

func (w *SimpleWriter) writeViolations(sb *strings.Builder, title string, violations []model.Violation) {
	if len(violations) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n%s (%d):\n", title, len(violations))
	for _, v := range violations {
		fmt.Fprintf(sb, "  %s\n", v.Link)

		shown, hidden := limitReferrers(v.Referrers, w.maxReferrers)
		for _, ref := range shown {
			fmt.Fprintf(sb, "    %s\n", ref)
		}
		switch {
		case hidden > 0 && len(shown) == 0:
			fmt.Fprintf(sb, "    (%s)\n", plural(hidden, "page"))
		case hidden > 0:
			fmt.Fprintf(sb, "    ... and %d more\n", hidden)
		}
	}
}

func (w *SimpleWriter) writeVerdict(sb *strings.Builder, result *model.Result) {
	sb.WriteString("\n")
	if result.OK() {
		sb.WriteString("PASS: no broken links or fragments\n")
		return
	}
	fmt.Fprintf(sb, "FAIL: %s, %s\n",
		plural(len(result.BrokenPaths), "broken link"),
		plural(len(result.BrokenFragments), "broken fragment"))
}
