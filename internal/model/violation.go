package model

import "sort"

// ViolationKind distinguishes a path that does not resolve from a
// fragment that does not resolve on its target page.
type ViolationKind string

const (
	// BrokenPath means the path component of the link did not resolve.
	BrokenPath ViolationKind = "broken_path"

	// BrokenFragment means the path resolved (or was empty) but the
	// fragment is not an identifier on the target page.
	BrokenFragment ViolationKind = "broken_fragment"
)

// String returns the human-readable name of the kind.
func (k ViolationKind) String() string {
	switch k {
	case BrokenPath:
		return "broken link"
	case BrokenFragment:
		return "broken fragment"
	default:
		return string(k)
	}
}

// Violation is one distinct broken link value together with every page
// that contains it. The same href broken on ten pages is one Violation.
type Violation struct {
	// Kind is the violation category.
	Kind ViolationKind `json:"kind"`

	// Link is the raw link value as written in the markup.
	Link string `json:"link"`

	// Referrers are the pages containing Link, sorted.
	Referrers []string `json:"referrers"`
}

// SortViolations orders violations by link value.
func SortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		return vs[i].Link < vs[j].Link
	})
}
