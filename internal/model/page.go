package model

// Page is one discovered HTML output file.
// Path is relative to the output root and uses forward slashes,
// for example "blog/post/index.html".
type Page struct {
	// Path is the page's file path relative to the output root.
	Path string `json:"path"`

	// IDs is the set of element identifiers defined on the page.
	IDs map[string]struct{} `json:"-"`
}

// NewPage creates a page with an empty identifier set.
func NewPage(path string) *Page {
	return &Page{Path: path, IDs: make(map[string]struct{})}
}

// HasID reports whether the page defines the identifier.
func (p *Page) HasID(id string) bool {
	_, ok := p.IDs[id]
	return ok
}

// AddID records an identifier on the page.
func (p *Page) AddID(id string) {
	p.IDs[id] = struct{}{}
}
