// Package main provides the entry point for the linkcheck CLI.
//
// linkcheck validates the internal links and fragment references of a
// generated static site. It exits 0 when every link resolves and 1
// otherwise.
//
// Usage:
//
//	linkcheck check [dir...]
//	linkcheck history [dir]
//
// See --help for all available options.
package main

func main() {
	Execute()
}
