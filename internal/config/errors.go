package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrNoRoot is returned when no output directory is configured.
	ErrNoRoot = errors.New("no output directory specified")

	// ErrInvalidConcurrency is returned when concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidParser is returned when the parser is neither "dom" nor "stream".
	ErrInvalidParser = errors.New(`invalid parser: must be "dom" or "stream"`)

	// ErrInvalidMaxReferrers is returned when the referrer limit is negative.
	ErrInvalidMaxReferrers = errors.New("invalid max referrers: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidIgnorePattern is returned when an ignore pattern is not a valid glob.
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern: not a valid glob")

	// ErrNoDBDir is returned when saving history without a database directory.
	ErrNoDBDir = errors.New("history database directory is not set")
)
