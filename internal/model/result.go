package model

// Stats counts distinct link values in one category.
type Stats struct {
	// Total is the number of distinct link values in the category.
	Total int `json:"total"`

	// Valid is the number of values that resolved for every referrer.
	Valid int `json:"valid"`

	// Broken is the number of values reported as violations.
	Broken int `json:"broken"`

	// Skipped counts fragment links that were not checked because their
	// path was already broken. Always zero for path stats.
	Skipped int `json:"skipped,omitempty"`
}

// Result is the aggregated outcome of a validation run.
type Result struct {
	// Root is the output directory that was scanned.
	Root string `json:"root"`

	// Pages is the number of HTML pages discovered.
	Pages int `json:"pages"`

	// Links summarises distinct internal links with a path component.
	Links Stats `json:"links"`

	// Fragments summarises distinct links carrying a fragment.
	Fragments Stats `json:"fragments"`

	// BrokenPaths lists links whose path did not resolve, sorted by link.
	BrokenPaths []Violation `json:"broken_paths"`

	// BrokenFragments lists links whose fragment did not resolve, sorted by link.
	BrokenFragments []Violation `json:"broken_fragments"`
}

// NewResult creates an empty result for the given root.
func NewResult(root string) *Result {
	return &Result{
		Root:            root,
		BrokenPaths:     make([]Violation, 0),
		BrokenFragments: make([]Violation, 0),
	}
}

// OK reports whether the run found no broken paths and no broken fragments.
func (r *Result) OK() bool {
	return len(r.BrokenPaths) == 0 && len(r.BrokenFragments) == 0
}

// TotalViolations returns the number of distinct broken link values.
func (r *Result) TotalViolations() int {
	return len(r.BrokenPaths) + len(r.BrokenFragments)
}
