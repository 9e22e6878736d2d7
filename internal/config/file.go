package config

import "path"

// File represents the structure of the .linkcheck configuration file.
type File struct {
	// Root overrides the default output directory.
	Root string `yaml:"root,omitempty"`

	// CaseInsensitive enables case-folded path matching.
	CaseInsensitive bool `yaml:"caseInsensitive,omitempty"`

	// Concurrency overrides the number of parallel extractions.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Parser selects the extractor ("dom" or "stream").
	Parser string `yaml:"parser,omitempty"`

	// MaxReferrers overrides the referrer limit. A pointer so that an
	// explicit 0 (list none) is distinguishable from unset.
	MaxReferrers *int `yaml:"maxReferrers,omitempty"`

	// Ignore lists glob patterns for link paths that are not validated.
	Ignore []string `yaml:"ignore,omitempty"`
}

// validPattern reports whether p is a well-formed path.Match pattern.
func validPattern(p string) bool {
	if p == "" {
		return false
	}
	_, err := path.Match(p, "")
	return err == nil
}
