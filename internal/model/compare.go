package model

// Comparison lists how the violations of two runs differ.
type Comparison struct {
	// Introduced are violations present now but not before.
	Introduced []Violation `json:"introduced"`

	// Resolved are violations present before but not now.
	Resolved []Violation `json:"resolved"`

	// Unchanged counts violations present in both runs.
	Unchanged int `json:"unchanged"`
}

// Changed reports whether any violation appeared or disappeared.
func (c *Comparison) Changed() bool {
	return len(c.Introduced) > 0 || len(c.Resolved) > 0
}

type violationKey struct {
	kind ViolationKind
	link string
}

// Compare matches violations of two results by kind and link value.
// Referrer changes alone do not count as a difference. Broken paths are
// listed before broken fragments, each in link order.
func Compare(previous, current *Result) *Comparison {
	before := violationSet(previous)
	after := violationSet(current)

	c := &Comparison{
		Introduced: make([]Violation, 0),
		Resolved:   make([]Violation, 0),
	}
	for _, v := range allViolations(current) {
		if _, ok := before[violationKey{v.Kind, v.Link}]; ok {
			c.Unchanged++
			continue
		}
		c.Introduced = append(c.Introduced, v)
	}
	for _, v := range allViolations(previous) {
		if _, ok := after[violationKey{v.Kind, v.Link}]; !ok {
			c.Resolved = append(c.Resolved, v)
		}
	}
	return c
}

func allViolations(r *Result) []Violation {
	if r == nil {
		return nil
	}
	all := make([]Violation, 0, r.TotalViolations())
	all = append(all, r.BrokenPaths...)
	return append(all, r.BrokenFragments...)
}

func violationSet(r *Result) map[violationKey]struct{} {
	set := make(map[violationKey]struct{})
	for _, v := range allViolations(r) {
		set[violationKey{v.Kind, v.Link}] = struct{}{}
	}
	return set
}
