package extract

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Kind
	}{
		{"", KindEmpty},
		{"#", KindEmpty},
		{"  ", KindEmpty},
		{"http://example.com/", KindExternal},
		{"HTTPS://example.com/x", KindExternal},
		{"//cdn.example.com/a.js", KindExternal},
		{"mailto:me@example.com", KindIgnoredScheme},
		{"tel:+15551234", KindIgnoredScheme},
		{"javascript:void(0)", KindIgnoredScheme},
		{"data:image/png;base64,AAAA", KindIgnoredScheme},
		{"#top", KindSamePage},
		{"/b/", KindCrossPage},
		{"/b#detail", KindCrossPage},
		{"b.html", KindCrossPage},
		{"../up.html", KindCrossPage},
		{"./img/a.png", KindCrossPage},
		{"/search?q=a:b", KindCrossPage},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.raw); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestKindInternal(t *testing.T) {
	t.Parallel()

	internal := map[Kind]bool{
		KindEmpty:         false,
		KindExternal:      false,
		KindIgnoredScheme: false,
		KindSamePage:      true,
		KindCrossPage:     true,
	}
	for kind, want := range internal {
		if kind.Internal() != want {
			t.Errorf("%s.Internal() = %v, want %v", kind, kind.Internal(), want)
		}
	}
}

func TestSplitFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw          string
		wantPath     string
		wantFragment string
		wantHas      bool
	}{
		{"/b#detail", "/b", "detail", true},
		{"#top", "", "top", true},
		{"/b/", "/b/", "", false},
		{"/a#b#c", "/a", "b#c", true},
		{"/a#", "/a", "", true},
	}

	for _, tt := range tests {
		p, f, has := SplitFragment(tt.raw)
		if p != tt.wantPath || f != tt.wantFragment || has != tt.wantHas {
			t.Errorf("SplitFragment(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.raw, p, f, has, tt.wantPath, tt.wantFragment, tt.wantHas)
		}
	}
}

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <link rel="stylesheet" href="/css/site.css">
  <link rel="preconnect" href="//fonts.example.com">
  <script src="/js/app.js"></script>
</head>
<body>
  <!-- <h2 id="commented">old</h2> <a href="/commented-out">x</a> -->
  <h1 id="top">Title</h1>
  <a name="legacy"></a>
  <a href="#top">Top</a>
  <a href="#top">Top again</a>
  <a href="/b/">B</a>
  <a href="/b#detail">Detail</a>
  <a href="https://example.com/">External</a>
  <a href="mailto:me@example.com">Mail</a>
  <a href="tel:+15551234">Call</a>
  <a href="#">Nothing</a>
  <img src="/logo.png" srcset="/logo-1x.png 1x, /logo-2x.png 2x">
  <video poster="/poster.jpg"></video>
  <svg><use xlink:href="/icons.svg#star"></use></svg>
  <div id=" spaced "></div>
</body>
</html>`

func extractors() map[string]Extractor {
	return map[string]Extractor{
		"dom":    NewHTMLExtractor(),
		"stream": NewStreamExtractor(),
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	for name, ex := range extractors() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := ex.Extract(strings.NewReader(samplePage))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			wantLinks := []string{
				"/css/site.css",
				"/js/app.js",
				"#top",
				"/b/",
				"/b#detail",
				"/logo.png",
				"/logo-1x.png",
				"/logo-2x.png",
				"/poster.jpg",
				"/icons.svg#star",
			}
			if len(doc.Links) != len(wantLinks) {
				t.Fatalf("expected links %v, got %v", wantLinks, doc.Links)
			}
			for i, want := range wantLinks {
				if doc.Links[i] != want {
					t.Errorf("link %d: expected %q, got %q", i, want, doc.Links[i])
				}
			}

			if len(doc.SamePage) != 1 || doc.SamePage[0] != "#top" {
				t.Errorf("expected same-page [#top], got %v", doc.SamePage)
			}

			for _, id := range []string{"top", "legacy", " spaced "} {
				if !doc.HasID(id) {
					t.Errorf("expected identifier %q", id)
				}
			}
			if doc.HasID("spaced") {
				t.Error("identifiers must be kept as written")
			}
			if doc.HasID("commented") {
				t.Error("identifiers inside comments must be ignored")
			}
			for _, l := range doc.Links {
				if l == "/commented-out" {
					t.Error("links inside comments must be ignored")
				}
			}
		})
	}
}

func TestExtractNameOnlyOnAnchors(t *testing.T) {
	t.Parallel()

	page := `<html><body><input name="q"><a name="here"></a></body></html>`
	for name, ex := range extractors() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := ex.Extract(strings.NewReader(page))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.HasID("q") {
				t.Error("name on non-anchor elements is not an identifier")
			}
			if !doc.HasID("here") {
				t.Error("expected anchor name to be an identifier")
			}
		})
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	t.Parallel()

	for name, ex := range extractors() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := ex.Extract(strings.NewReader(""))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(doc.Links) != 0 || len(doc.IDs) != 0 {
				t.Errorf("expected empty document, got links=%v ids=%v", doc.Links, doc.IDs)
			}
		})
	}
}

func TestExtractNoscript(t *testing.T) {
	t.Parallel()

	const body = `<html><head><noscript><link rel="stylesheet" href="/nojs.css"></noscript></head>
<body><noscript><img src="/fallback.png"><p id="nojs">x</p></noscript><a href="/after">a</a></body></html>`

	for name, ex := range extractors() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := ex.Extract(strings.NewReader(body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := []string{"/nojs.css", "/fallback.png", "/after"}
			if len(doc.Links) != len(want) {
				t.Fatalf("expected links %v, got %v", want, doc.Links)
			}
			for i := range want {
				if doc.Links[i] != want[i] {
					t.Errorf("link %d: expected %q, got %q", i, want[i], doc.Links[i])
				}
			}
			if !doc.HasID("nojs") {
				t.Error("expected identifier inside noscript")
			}
		})
	}
}
