// Package linkcheck validates the internal links of a built site in two
// phases.
//
// The collection phase (Collector.Collect) reads every page, possibly in
// parallel, and assembles an immutable Snapshot: the per-page identifier
// table and the link table keyed by raw link value. Nothing is validated
// until every page has been extracted, because a cross-page fragment can
// only be checked once its target page is known.
//
// The validation phase (Validate) is a pure function from a Snapshot to a
// model.Result. Violations are grouped by link value with all referring
// pages attached.
//
//	tree, err := site.Discover("dist")
//	snap, err := linkcheck.NewCollector().Collect(ctx, tree)
//	result := linkcheck.Validate(snap)
package linkcheck
