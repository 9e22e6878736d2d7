package extract

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// HTMLExtractor parses the full document tree with html.Parse, which
// correctly handles malformed markup. Scripting is disabled while parsing
// so that <noscript> content is parsed as elements and its links are
// checked.
type HTMLExtractor struct{}

// NewHTMLExtractor creates a DOM-based extractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract implements Extractor.
func (e *HTMLExtractor) Extract(r io.Reader) (*Document, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := newDocument()

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				// SVG xlink:href parses as Namespace "xlink", Key "href".
				doc.attribute(n.Data, attr.Key, attr.Val)
			}
		}
		// Comment nodes have no children and carry no attributes.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return doc, nil
}
