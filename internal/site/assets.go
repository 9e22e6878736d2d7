package site

import (
	"io/fs"
	"os"
	"strings"
)

// Assets answers whether a site-absolute path names a file or directory
// under the output root.
type Assets interface {
	Exists(p string) bool
}

// fsAssets checks the filesystem directly.
type fsAssets struct {
	fsys fs.FS
}

// newFSAssets returns an Assets backed by the directory root.
func newFSAssets(root string) *fsAssets {
	return &fsAssets{fsys: os.DirFS(root)}
}

// Exists implements Assets.
func (a *fsAssets) Exists(p string) bool {
	name, ok := fsName(p)
	if !ok {
		return false
	}
	_, err := fs.Stat(a.fsys, name)
	return err == nil
}

// foldedAssets matches against the entries recorded during discovery,
// ignoring case.
type foldedAssets struct {
	entries map[string]struct{}
}

// Exists implements Assets.
func (a *foldedAssets) Exists(p string) bool {
	name, ok := fsName(p)
	if !ok {
		return false
	}
	_, found := a.entries[foldCase(name)]
	return found
}

// fsName converts "/img/logo.png" to the io/fs name "img/logo.png".
func fsName(p string) (string, bool) {
	name := strings.Trim(p, "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
