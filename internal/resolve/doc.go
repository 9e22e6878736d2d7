// Package resolve decides whether link paths and fragments point at
// something that exists in a discovered site.
//
// PathResolver applies the pretty-URL heuristics in order: exact canonical
// form, trailing slash, ".html" extension, "/index.html", and finally a
// static asset on disk. FragmentResolver checks an identifier against the
// identifier set of one page.
package resolve
