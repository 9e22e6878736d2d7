// Package model defines the core data structures shared by the discovery,
// extraction, validation and reporting packages of linkcheck.
//
// The main types are:
//   - Page: one discovered HTML file and the identifiers it defines
//   - Violation: a broken link value with the pages that reference it
//   - Result: the aggregated outcome of a validation run
//
// All types serialise to JSON for the JSON report and the history database.
package model
