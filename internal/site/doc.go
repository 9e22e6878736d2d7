// Package site discovers the pages of a built site.
//
// Discover walks an output directory once and returns a Tree: the sorted
// list of HTML pages, the PathSet of canonical forms under which each page
// may be linked, and an asset lookup used for non-page link targets.
//
//	tree, err := site.Discover("dist")
//	if errors.Is(err, site.ErrRootNotFound) {
//		// the build step was never run
//	}
package site
