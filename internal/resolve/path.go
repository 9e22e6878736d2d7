package resolve

import (
	"net/url"
	"path"
	"strings"
)

// Rule identifies which heuristic resolved a path.
type Rule int

const (
	// RuleNone means the path did not resolve.
	RuleNone Rule = iota
	// RuleExact is direct membership in the canonical path set.
	RuleExact
	// RuleTrailingSlash matched after appending "/".
	RuleTrailingSlash
	// RuleHTMLExtension matched after appending ".html".
	RuleHTMLExtension
	// RuleIndex matched after appending "/index.html".
	RuleIndex
	// RuleAsset matched a file or directory on disk.
	RuleAsset
)

// String returns the name of the rule.
func (r Rule) String() string {
	switch r {
	case RuleExact:
		return "exact"
	case RuleTrailingSlash:
		return "trailing-slash"
	case RuleHTMLExtension:
		return "html-extension"
	case RuleIndex:
		return "index"
	case RuleAsset:
		return "asset"
	default:
		return "none"
	}
}

// Index is the view of a discovered site the resolver needs.
type Index interface {
	// Lookup returns the page file owning a canonical form.
	Lookup(form string) (page string, ok bool)
	// AssetExists reports whether a site-absolute path exists on disk.
	AssetExists(p string) bool
}

// Target is a resolved link path.
type Target struct {
	// Path is the normalised site-absolute path that was resolved.
	Path string
	// Page is the page file the path resolved to; empty for assets.
	Page string
	// Rule is the heuristic that matched.
	Rule Rule
}

// IsPage reports whether the target is an HTML page with identifiers.
func (t Target) IsPage() bool {
	return t.Page != ""
}

// PathResolver resolves link paths against an Index.
type PathResolver struct {
	index Index
}

// NewPathResolver creates a resolver over index.
func NewPathResolver(index Index) *PathResolver {
	return &PathResolver{index: index}
}

// Resolve resolves the path component of a link found on page referrer.
// The path must be non-empty; same-page references never reach here.
func (r *PathResolver) Resolve(referrer, linkPath string) (Target, bool) {
	p := Normalize(referrer, linkPath)

	if page, ok := r.index.Lookup(p); ok {
		return Target{Path: p, Page: page, Rule: RuleExact}, true
	}
	if !strings.HasSuffix(p, "/") {
		if page, ok := r.index.Lookup(p + "/"); ok {
			return Target{Path: p, Page: page, Rule: RuleTrailingSlash}, true
		}
	}
	if !strings.HasSuffix(p, ".html") {
		if page, ok := r.index.Lookup(p + ".html"); ok {
			return Target{Path: p, Page: page, Rule: RuleHTMLExtension}, true
		}
	}
	if page, ok := r.index.Lookup(strings.TrimSuffix(p, "/") + "/index.html"); ok {
		return Target{Path: p, Page: page, Rule: RuleIndex}, true
	}
	if r.index.AssetExists(p) {
		return Target{Path: p, Rule: RuleAsset}, true
	}
	return Target{Path: p}, false
}

// Normalize turns a link path into a clean site-absolute path.
// The query string is dropped, relative paths are joined to the
// referrer's directory, dot segments are removed, a trailing slash is
// kept, and percent-escapes are decoded when valid. A path that is only a
// query refers to the referrer itself.
func Normalize(referrer, linkPath string) string {
	p, _, _ := strings.Cut(linkPath, "?")
	if p == "" {
		return "/" + strings.TrimPrefix(referrer, "/")
	}

	dir := strings.HasSuffix(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = path.Join(path.Dir("/"+strings.TrimPrefix(referrer, "/")), p)
	} else {
		p = path.Clean(p)
	}
	if dir && p != "/" {
		p += "/"
	}

	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	return p
}
