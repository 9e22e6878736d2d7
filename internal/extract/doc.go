// Package extract pulls link candidates and element identifiers out of
// HTML pages.
//
// An Extractor turns one page into a Document. Two implementations are
// provided, both on golang.org/x/net/html: HTMLExtractor builds the DOM
// with html.Parse, and StreamExtractor runs the tokenizer without building
// a tree. They produce the same Document for well-formed pages; comments
// never contribute links or identifiers in either.
//
// Classify and SplitFragment decide what a raw attribute value is:
// external URLs and non-navigational schemes are dropped, fragment-only
// values are same-page references, anything else is a cross-page link.
package extract
