package resolve

import "net/url"

// IDTable answers identifier membership per page.
type IDTable interface {
	HasID(page, id string) bool
}

// FragmentResolver checks fragments against page identifiers.
type FragmentResolver struct {
	ids IDTable
}

// NewFragmentResolver creates a resolver over ids.
func NewFragmentResolver(ids IDTable) *FragmentResolver {
	return &FragmentResolver{ids: ids}
}

// Resolve reports whether fragment names an identifier on page.
// The fragment matches as written or percent-decoded. Identifiers are
// case-sensitive.
func (r *FragmentResolver) Resolve(page, fragment string) bool {
	if r.ids.HasID(page, fragment) {
		return true
	}
	decoded, err := url.PathUnescape(fragment)
	if err != nil || decoded == fragment {
		return false
	}
	return r.ids.HasID(page, decoded)
}
