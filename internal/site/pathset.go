package site

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	htmlSuffix  = ".html"
	indexSuffix = "index.html"
)

// PathSet maps every canonical form of every page to the page's file path.
// Forms are site-absolute ("/blog/"), page paths are root-relative
// ("blog/index.html").
type PathSet struct {
	fold  bool
	forms map[string]string
}

// NewPathSet creates an empty set. When caseInsensitive is true, forms are
// case-folded on insertion and lookup.
func NewPathSet(caseInsensitive bool) *PathSet {
	return &PathSet{fold: caseInsensitive, forms: make(map[string]string)}
}

// CanonicalForms returns the equivalent link forms of a page path:
// the file itself, the directory form for index pages, and the
// extensionless form. The suffixes match in any case, so "B.HTML" yields
// "/B.HTML" and "/B".
func CanonicalForms(pagePath string) []string {
	file := "/" + strings.TrimPrefix(pagePath, "/")
	lower := strings.ToLower(file)
	forms := []string{file}
	if strings.HasSuffix(lower, "/"+indexSuffix) {
		forms = append(forms, file[:len(file)-len(indexSuffix)])
	}
	if strings.HasSuffix(lower, htmlSuffix) {
		forms = append(forms, file[:len(file)-len(htmlSuffix)])
	}
	return forms
}

// IsPage reports whether the file name rel is an HTML page. The
// extension is matched case-insensitively.
func IsPage(rel string) bool {
	return strings.HasSuffix(strings.ToLower(rel), htmlSuffix)
}

// Add registers all canonical forms of pagePath. A form already owned by
// another page keeps its first owner.
func (s *PathSet) Add(pagePath string) {
	for _, form := range CanonicalForms(pagePath) {
		key := s.key(form)
		if _, exists := s.forms[key]; !exists {
			s.forms[key] = pagePath
		}
	}
}

// Lookup returns the page owning the form p.
func (s *PathSet) Lookup(p string) (string, bool) {
	page, ok := s.forms[s.key(p)]
	return page, ok
}

// Len returns the number of registered forms.
func (s *PathSet) Len() int {
	return len(s.forms)
}

// CaseInsensitive reports whether lookups fold case.
func (s *PathSet) CaseInsensitive() bool {
	return s.fold
}

func (s *PathSet) key(p string) string {
	if !s.fold {
		return p
	}
	return foldCase(p)
}

// foldCase applies Unicode case folding. A new Caser per call because
// Casers carry state and must not be shared between goroutines.
func foldCase(s string) string {
	return cases.Fold().String(s)
}
