// Package log builds the slog logger used by linkcheck.
//
// Logs go to stderr as text. The level is Warn unless verbose mode is on,
// in which case extraction and resolution steps are logged at Debug.
//
// RootHandler rewrites absolute paths under the checked output
// directories into root-relative form, so verbose logs from two machines
// building the same site can be diffed:
//
//	logger := log.NewLogger(os.Stderr, verbose, "/home/me/site/dist")
//	logger.Debug("read page", "file", "/home/me/site/dist/blog/index.html")
//	// file=dist/blog/index.html
package log
