package config

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultRoot is the output directory produced by the site build.
	DefaultRoot = "dist"

	// DefaultMaxReferrers is how many referring pages are listed under each
	// broken link before the remainder is summarised as "and N more".
	DefaultMaxReferrers = 3

	// AppName is the application name used for XDG directory paths.
	AppName = "linkcheck"

	// ParserDOM parses each page into a tree with html.Parse.
	ParserDOM = "dom"

	// ParserStream scans each page with the html tokenizer without
	// building a tree.
	ParserStream = "stream"
)

// DefaultConcurrency is the number of pages extracted in parallel.
var DefaultConcurrency = runtime.NumCPU()

// Config holds all configuration options for linkcheck.
// It is populated from the config file and CLI flags and passed down
// explicitly; nothing reads configuration from global state.
type Config struct {
	// Root is the output directory to validate.
	Root string

	// CaseInsensitive folds case when matching link paths against pages
	// and assets. Fragment identifiers are always matched case-sensitively.
	CaseInsensitive bool

	// Concurrency is the number of files read and extracted at once.
	Concurrency int

	// Parser selects the page extractor: ParserDOM or ParserStream.
	Parser string

	// MaxReferrers limits the referring pages printed per broken link.
	MaxReferrers int

	// IgnorePatterns are glob patterns (path.Match syntax) matched against
	// the path component of a link. Matching links are not validated.
	IgnorePatterns []string

	// ConfigFilePath is the path to the configuration file.
	// If empty, .linkcheck is searched in the current and home directory.
	ConfigFilePath string

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// SaveToDB records the run summary in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Root:         DefaultRoot,
		Concurrency:  DefaultConcurrency,
		Parser:       ParserDOM,
		MaxReferrers: DefaultMaxReferrers,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for linkcheck.
// On Linux: ~/.local/share/linkcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrNoRoot
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Parser != ParserDOM && c.Parser != ParserStream {
		return ErrInvalidParser
	}
	if c.MaxReferrers < 0 {
		return ErrInvalidMaxReferrers
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	for _, p := range c.IgnorePatterns {
		if !validPattern(p) {
			return ErrInvalidIgnorePattern
		}
	}
	if c.SaveToDB && c.DBDir == "" {
		return ErrNoDBDir
	}
	return nil
}

// Apply copies the values set in the file onto the config.
// Zero values in the file leave the config untouched.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.Root != "" {
		c.Root = f.Root
	}
	if f.CaseInsensitive {
		c.CaseInsensitive = true
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
	if f.Parser != "" {
		c.Parser = f.Parser
	}
	if f.MaxReferrers != nil {
		c.MaxReferrers = *f.MaxReferrers
	}
	if len(f.Ignore) > 0 {
		c.IgnorePatterns = append([]string(nil), f.Ignore...)
	}
}
