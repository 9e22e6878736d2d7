// Package report renders validation results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text for terminal display (the default)
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown for pull request comments and docs
//
// No writer prints timestamps or anything else that varies between runs,
// so two checks of the same tree produce byte-identical reports.
// Fingerprint hashes the text rendering for the run history.
package report
