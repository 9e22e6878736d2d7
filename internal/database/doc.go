// Package database stores the history of link checks in SQLite.
//
// Each saved run records its counts, verdict, report fingerprint and the
// full result as JSON. The history is written only when asked for
// (check --save) and read only by the history command; validation never
// consults it, so every check starts from a clean state.
//
// The driver is modernc.org/sqlite, which needs no cgo.
package database
