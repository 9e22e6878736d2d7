// Package config provides configuration structures and utilities for linkcheck.
// It defines the options that control how an output directory is scanned,
// how links are matched, and how the report is rendered.
package config
