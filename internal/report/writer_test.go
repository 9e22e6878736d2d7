package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/linkcheck/internal/config"
	"github.com/nao1215/linkcheck/internal/model"
)

// createTestResult creates a result with sample violations for testing.
func createTestResult() *model.Result {
	result := model.NewResult("dist")
	result.Pages = 4
	result.Links = model.Stats{Total: 6, Valid: 5, Broken: 1}
	result.Fragments = model.Stats{Total: 3, Valid: 1, Broken: 1, Skipped: 1}
	result.BrokenPaths = []model.Violation{{
		Kind:      model.BrokenPath,
		Link:      "/missing",
		Referrers: []string{"a.html", "b.html", "c.html", "index.html", "z.html"},
	}}
	result.BrokenFragments = []model.Violation{{
		Kind:      model.BrokenFragment,
		Link:      "/about#team",
		Referrers: []string{"index.html"},
	}}
	return result
}

// TestSimpleWriter tests the plain text report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Link check: dist\n",
			"Pages:      4\n",
			"Links:      6 checked, 5 valid, 1 broken\n",
			"Fragments:  3 checked, 1 valid, 1 broken, 1 skipped\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("limits referrers", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithMaxReferrers(3)).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "Broken links (1):\n  /missing\n    a.html\n    b.html\n    c.html\n    ... and 2 more\n"
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected listing %q, got\n%s", want, buf.String())
		}
	})

	t.Run("zero limit prints only the count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithMaxReferrers(0)).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "  /missing\n    (5 pages)\n") {
			t.Errorf("expected page count, got\n%s", buf.String())
		}
		if strings.Contains(buf.String(), "a.html") {
			t.Error("expected no referrers listed")
		}
	})

	t.Run("all referrers", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithAllReferrers()).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "    z.html\n") {
			t.Error("expected every referrer listed")
		}
		if strings.Contains(buf.String(), "more") {
			t.Error("expected no truncation marker")
		}
	})

	t.Run("writes fail verdict", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasSuffix(buf.String(), "\nFAIL: 1 broken link, 1 broken fragment\n") {
			t.Errorf("unexpected verdict in\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "Broken fragments (1):\n  /about#team\n    index.html\n") {
			t.Errorf("expected fragment listing in\n%s", buf.String())
		}
	})

	t.Run("writes pass verdict without listings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(model.NewResult("dist")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.HasSuffix(output, "PASS: no broken links or fragments\n") {
			t.Errorf("unexpected verdict in\n%s", output)
		}
		if strings.Contains(output, "Broken") {
			t.Error("expected no broken listings")
		}
	})

	t.Run("returns bytes written", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes, got %d", buf.Len(), n)
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithVersion("1.2.3")).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got JSONReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Version != "1.2.3" {
			t.Errorf("expected version 1.2.3, got %q", got.Version)
		}
		if got.OK {
			t.Error("expected ok to be false")
		}
		if got.Result == nil || len(got.Result.BrokenPaths) != 1 {
			t.Fatalf("unexpected result: %+v", got.Result)
		}
		if got.Result.BrokenPaths[0].Kind != model.BrokenPath {
			t.Errorf("expected broken_path kind, got %q", got.Result.BrokenPaths[0].Kind)
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(model.NewResult("dist")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected single line, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), `"broken_paths":[]`) {
			t.Errorf("expected empty list rather than null, got %s", buf.String())
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(model.NewResult("dist")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"ok\": true") {
			t.Errorf("expected indented output, got %s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Link Check Report",
			"## Summary",
			"## Broken Links",
			"## Broken Fragments",
			"`/missing`",
			"and 2 more",
			"[!CAUTION]",
			"mermaid",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("passing result has tip and no listings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(model.NewResult("dist")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[!TIP]") {
			t.Error("expected tip alert")
		}
		if strings.Contains(output, "## Broken Links") {
			t.Error("expected no broken links section")
		}
	})

	t.Run("escapes table separators", func(t *testing.T) {
		t.Parallel()

		if got := code("/a|b"); got != "`/a\\|b`" {
			t.Errorf("unexpected escape: %q", got)
		}
	})
}

// TestForConfig tests report format selection.
func TestForConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *config.Config)
		check  func(w Writer) bool
	}{
		{
			name:   "text by default",
			modify: func(*config.Config) {},
			check:  func(w Writer) bool { _, ok := w.(*SimpleWriter); return ok },
		},
		{
			name:   "json",
			modify: func(c *config.Config) { c.JSONReport = true },
			check:  func(w Writer) bool { _, ok := w.(*JSONWriter); return ok },
		},
		{
			name:   "markdown",
			modify: func(c *config.Config) { c.MarkdownReport = true },
			check:  func(w Writer) bool { _, ok := w.(*MarkdownWriter); return ok },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.modify(cfg)
			if w := ForConfig(&bytes.Buffer{}, cfg, "dev"); !tt.check(w) {
				t.Errorf("unexpected writer type %T", w)
			}
		})
	}
}

// TestFingerprint tests report hashing.
func TestFingerprint(t *testing.T) {
	t.Parallel()

	a, err := Fingerprint(createTestResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Fingerprint(createTestResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("expected stable fingerprint, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}

	changed := createTestResult()
	changed.BrokenPaths[0].Referrers = append(changed.BrokenPaths[0].Referrers, "zz.html")
	c, err := Fingerprint(changed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == a {
		t.Error("expected a hidden referrer to change the fingerprint")
	}
}
