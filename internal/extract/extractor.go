package extract

import (
	"io"
	"strings"
)

// Document is everything extracted from one page.
type Document struct {
	// Links are the internal link candidates, de-duplicated, in document order.
	// Same-page references are included.
	Links []string

	// SamePage are the fragment-only values among Links.
	SamePage []string

	// IDs are the element identifiers defined on the page.
	IDs map[string]struct{}

	seen map[string]struct{}
}

// Extractor turns page markup into a Document.
type Extractor interface {
	Extract(r io.Reader) (*Document, error)
}

func newDocument() *Document {
	return &Document{
		Links:    make([]string, 0),
		SamePage: make([]string, 0),
		IDs:      make(map[string]struct{}),
		seen:     make(map[string]struct{}),
	}
}

// addLink records raw if it is an internal link not seen before.
func (d *Document) addLink(raw string) {
	raw = strings.TrimSpace(raw)
	kind := Classify(raw)
	if !kind.Internal() {
		return
	}
	if _, dup := d.seen[raw]; dup {
		return
	}
	d.seen[raw] = struct{}{}
	d.Links = append(d.Links, raw)
	if kind == KindSamePage {
		d.SamePage = append(d.SamePage, raw)
	}
}

// addSrcset records every URL of a srcset value:
// "a.png 1x, b.png 2x" yields a.png and b.png.
func (d *Document) addSrcset(v string) {
	for _, candidate := range strings.Split(v, ",") {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		d.addLink(fields[0])
	}
}

// addID records id as written. Browsers match fragments against the exact
// attribute value, surrounding whitespace included.
func (d *Document) addID(id string) {
	if id == "" {
		return
	}
	d.IDs[id] = struct{}{}
}

// HasID reports whether the document defines the identifier.
func (d *Document) HasID(id string) bool {
	_, ok := d.IDs[id]
	return ok
}

// attribute handles one attribute of element tag for either extractor.
func (d *Document) attribute(tag, key, val string) {
	switch key {
	case "href", "xlink:href", "src", "poster":
		d.addLink(val)
	case "srcset":
		d.addSrcset(val)
	case "id":
		d.addID(val)
	case "name":
		// Legacy named anchors are fragment targets.
		if tag == "a" {
			d.addID(val)
		}
	}
}
