package linkcheck

import (
	"github.com/nao1215/linkcheck/internal/model"
	"github.com/nao1215/linkcheck/internal/site"
)

// Snapshot is the immutable outcome of the collection phase.
type Snapshot struct {
	tree  *site.Tree
	pages map[string]*model.Page

	// links maps a raw link value to the sorted pages containing it.
	links map[string][]string

	// linkOrder holds the keys of links, sorted.
	linkOrder []string
}

// Root returns the scanned output directory.
func (s *Snapshot) Root() string {
	return s.tree.Root
}

// PageCount returns the number of pages in the snapshot.
func (s *Snapshot) PageCount() int {
	return len(s.pages)
}

// Page returns the page with the given path.
func (s *Snapshot) Page(path string) (*model.Page, bool) {
	p, ok := s.pages[path]
	return p, ok
}

// Links returns every distinct internal link value in sorted order.
func (s *Snapshot) Links() []string {
	return append([]string(nil), s.linkOrder...)
}

// Referrers returns the pages that contain the raw link value.
func (s *Snapshot) Referrers(link string) []string {
	return append([]string(nil), s.links[link]...)
}

// HasID reports whether page defines the identifier.
func (s *Snapshot) HasID(page, id string) bool {
	p, ok := s.pages[page]
	if !ok {
		return false
	}
	return p.HasID(id)
}

// Lookup returns the page owning the canonical form.
func (s *Snapshot) Lookup(form string) (string, bool) {
	return s.tree.Lookup(form)
}

// AssetExists reports whether a site-absolute path exists under the root.
func (s *Snapshot) AssetExists(p string) bool {
	return s.tree.AssetExists(p)
}
