// Package pipeline runs the phases of a link check as ordered steps.
//
// A Run carries the state of one check of one output directory. The
// default pipeline is:
//
//	discover  -> site.Discover builds the page list and canonical forms
//	extract   -> linkcheck.Collector reads every page into a Snapshot
//	validate  -> linkcheck.Validate turns the Snapshot into a Result
//
// Each step consumes what the previous one produced, so a failed step
// stops the run. BatchProcessor checks several output directories
// concurrently, each with a fresh pipeline, using errgroup.
package pipeline
