package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// StreamExtractor reads the page token by token without building a tree.
type StreamExtractor struct{}

// NewStreamExtractor creates a tokenizer-based extractor.
func NewStreamExtractor() *StreamExtractor {
	return &StreamExtractor{}
}

// Extract implements Extractor.
func (e *StreamExtractor) Extract(r io.Reader) (*Document, error) {
	doc := newDocument()
	if err := tokenize(html.NewTokenizer(r), doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// tokenize feeds every start tag of z to doc. The tokenizer returns the
// body of <noscript> as raw text, so that text is tokenized again.
func tokenize(z *html.Tokenizer, doc *Document) error {
	inNoscript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return fmt.Errorf("tokenize html: %w", err)
			}
			return nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				doc.attribute(tag, string(key), string(val))
			}
			inNoscript = tag == "noscript"
		case html.TextToken:
			if inNoscript {
				inner := html.NewTokenizer(bytes.NewReader(z.Raw()))
				if err := tokenize(inner, doc); err != nil {
					return err
				}
			}
			inNoscript = false
		default:
			inNoscript = false
		}
	}
}
