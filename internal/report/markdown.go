package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/linkcheck/internal/config"
	"github.com/nao1215/linkcheck/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format, suitable for posting
// as a pull request comment.
type MarkdownWriter struct {
	baseWriter

	maxReferrers int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownMaxReferrers limits the referring pages listed per link in
// the tables. The full list is always available in a details block.
func WithMarkdownMaxReferrers(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.maxReferrers = n
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:   newBaseWriter(output),
		maxReferrers: config.DefaultMaxReferrers,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writeViolations(md, "Broken Links", result.BrokenPaths)
	w.writeViolations(md, "Broken Fragments", result.BrokenFragments)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.Result) {
	md.H1("Link Check Report")
	md.PlainText("")

	status := "✅ Pass"
	if !result.OK() {
		status = "❌ Fail"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Output Directory", code(result.Root)},
			{"Pages", strconv.Itoa(result.Pages)},
			{"Status", status},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.Result) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Checked", "Valid", "Broken", "Skipped"},
		Rows: [][]string{
			{
				"Links",
				strconv.Itoa(result.Links.Total),
				strconv.Itoa(result.Links.Valid),
				strconv.Itoa(result.Links.Broken),
				"-",
			},
			{
				"Fragments",
				strconv.Itoa(result.Fragments.Total),
				strconv.Itoa(result.Fragments.Valid),
				strconv.Itoa(result.Fragments.Broken),
				strconv.Itoa(result.Fragments.Skipped),
			},
		},
	})
	md.PlainText("")

	if result.Links.Total > 0 {
		w.writePieChart(md, result)
	}

	if result.OK() {
		md.Tip("No broken links or fragments.")
	} else {
		md.Cautionf("%s and %s found.",
			plural(len(result.BrokenPaths), "broken link"),
			plural(len(result.BrokenFragments), "broken fragment"))
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of link outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.Result) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Link Status"),
		piechart.WithShowData(true),
	)

	chart.LabelAndIntValue("Valid", uint64(result.Links.Valid))
	if result.Links.Broken > 0 {
		chart.LabelAndIntValue("Broken", uint64(result.Links.Broken))
	}
	if result.Fragments.Broken > 0 {
		chart.LabelAndIntValue("Broken fragment", uint64(result.Fragments.Broken))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeViolations(md *markdown.Markdown, title string, violations []model.Violation) {
	if len(violations) == 0 {
		return
	}

	md.H2(title)
	md.PlainText("")

	rows := make([][]string, len(violations))
	for i, v := range violations {
		shown, hidden := limitReferrers(v.Referrers, w.maxReferrers)
		cells := make([]string, 0, len(shown)+1)
		for _, ref := range shown {
			cells = append(cells, code(ref))
		}
		if hidden > 0 {
			cells = append(cells, "and "+strconv.Itoa(hidden)+" more")
		}
		rows[i] = []string{
			code(v.Link),
			strconv.Itoa(len(v.Referrers)),
			strings.Join(cells, ", "),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Link", "Pages", "Referenced By"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, v := range violations {
		if _, hidden := limitReferrers(v.Referrers, w.maxReferrers); hidden > 0 {
			md.Details(v.Link, strings.Join(v.Referrers, "\n"))
		}
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [linkcheck](https://github.com/nao1215/linkcheck)*")
}

// code formats s as inline code, escaping table separators.
func code(s string) string {
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}
