package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned when the output directory does not exist.
// It means the site build has not been run.
var ErrRootNotFound = errors.New("output directory does not exist")

// Tree is the result of discovery over one output directory.
type Tree struct {
	// Root is the output directory as given to Discover.
	Root string

	// Pages lists every HTML file relative to Root in walk order, which is
	// lexical within each directory.
	Pages []string

	// Paths holds the canonical forms of every page.
	Paths *PathSet

	assets Assets
}

// AssetExists reports whether the site-absolute path p exists on disk
// under the root, as a file or a directory.
func (t *Tree) AssetExists(p string) bool {
	return t.assets.Exists(p)
}

// File returns the on-disk path of a page.
func (t *Tree) File(page string) string {
	return filepath.Join(t.Root, filepath.FromSlash(page))
}

// Option configures Discover.
type Option func(*options)

type options struct {
	caseInsensitive bool
}

// WithCaseInsensitive folds case for page and asset matching.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *options) {
		o.caseInsensitive = enabled
	}
}

// Discover walks root and builds its Tree.
func Discover(root string, opts ...Option) (*Tree, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("stat output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	tree := &Tree{
		Root:  root,
		Pages: make([]string, 0),
		Paths: NewPathSet(o.caseInsensitive),
	}
	entries := make(map[string]struct{})

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if o.caseInsensitive {
			entries[foldCase(rel)] = struct{}{}
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if IsPage(rel) {
			tree.Pages = append(tree.Pages, rel)
			tree.Paths.Add(rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk output directory: %w", err)
	}

	if o.caseInsensitive {
		tree.assets = &foldedAssets{entries: entries}
	} else {
		tree.assets = newFSAssets(root)
	}
	return tree, nil
}

// Lookup returns the page owning the canonical form p.
func (t *Tree) Lookup(p string) (string, bool) {
	return t.Paths.Lookup(p)
}
