package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/linkcheck/internal/config"
	"github.com/nao1215/linkcheck/internal/database"
	"github.com/nao1215/linkcheck/internal/log"
	"github.com/nao1215/linkcheck/internal/pipeline"
	"github.com/nao1215/linkcheck/internal/report"
	"github.com/nao1215/linkcheck/internal/site"
	"github.com/spf13/cobra"
)

// ErrViolationsFound is returned by check when at least one broken link or
// fragment was reported. The report has already been written.
var ErrViolationsFound = errors.New("broken links found")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [dir...]",
		Short: "Check internal links of a built site",
		Long: `Check reads every HTML page under the output directory and verifies that all
internal links resolve to a page or asset, and that every #fragment names
an element identifier on its target page.

A link path resolves when it matches a page as written, with a trailing
slash, with .html appended, with /index.html appended, or as a file or
directory on disk. Fragments are compared case-sensitively.

Exit status is 0 when nothing is broken and 1 otherwise, including when the
output directory does not exist.

Examples:
  # Check ./dist
  linkcheck check

  # Check another output directory
  linkcheck check public

  # Check several sites at once
  linkcheck check site-a/dist site-b/dist

  # Markdown report for a pull request comment
  linkcheck check -m -o linkcheck.md

  # Skip drafts and record the run in the history database
  linkcheck check --ignore '/drafts/*' --save`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linkcheck in current or home directory)")

	// Matching flags
	cmd.Flags().Bool("case-insensitive", false,
		"Fold case when matching link paths (fragments stay case-sensitive)")
	cmd.Flags().StringArray("ignore", nil,
		"Glob pattern of link paths not to check (repeatable)")

	// Extraction flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of pages read in parallel")
	cmd.Flags().String("parser", config.ParserDOM,
		`Page parser: "dom" or "stream"`)

	// Report flags
	cmd.Flags().Int("max-referrers", config.DefaultMaxReferrers,
		"Referring pages listed per broken link")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("save", false,
		"Record the run in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, roots, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, roots...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCheck(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, roots, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the config file and cobra flags.
// Flags only override file values when given explicitly. It also returns
// the output directories to check: the arguments, or the configured root.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, []string, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, nil, err
	}

	// An explicit --config must exist; the default lookup may find nothing.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	case cfg.ConfigFilePath != "":
		return nil, nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("case-insensitive") {
		if cfg.CaseInsensitive, err = flags.GetBool("case-insensitive"); err != nil {
			return nil, nil, err
		}
	}
	if flags.Changed("ignore") {
		if cfg.IgnorePatterns, err = flags.GetStringArray("ignore"); err != nil {
			return nil, nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, nil, err
		}
	}
	if flags.Changed("parser") {
		if cfg.Parser, err = flags.GetString("parser"); err != nil {
			return nil, nil, err
		}
	}
	if flags.Changed("max-referrers") {
		if cfg.MaxReferrers, err = flags.GetInt("max-referrers"); err != nil {
			return nil, nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, nil, err
	}
	if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
		return nil, nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	roots := args
	if len(roots) == 0 {
		roots = []string{cfg.Root}
	} else {
		cfg.Root = roots[0]
	}

	return cfg, roots, nil
}

// runCheck checks every root and writes one report per root, in argument
// order. It returns ErrViolationsFound when any report has violations,
// and a diagnostic telling the user to build the site when a root is
// missing.
func runCheck(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, roots []string, logger *slog.Logger) error {
	logger.Info("starting check",
		"roots", roots,
		"concurrency", cfg.Concurrency,
		"parser", cfg.Parser,
		"caseInsensitive", cfg.CaseInsensitive,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(cfg, logger)
		},
		pipeline.WithBatchConcurrency(len(roots)),
		pipeline.WithBatchLogger(logger),
	)

	runs, err := bp.ProcessBatch(ctx, roots)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer := report.ForConfig(output, cfg, getVersion())
	now := time.Now()

	var failures []error
	violations := false
	written := 0
	for _, run := range runs {
		if run.Err != nil {
			failures = append(failures, runError(run))
			continue
		}

		if written > 0 && !cfg.JSONReport {
			fmt.Fprintln(output)
		}
		if _, err := writer.Write(run.Result); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		written++

		if !run.Result.OK() {
			violations = true
		}

		if err := saveRun(ctx, db, run, now, logger); err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	if violations {
		return ErrViolationsFound
	}
	return nil
}

// runError turns a failed run into the message shown to the user.
func runError(run *pipeline.Run) error {
	if errors.Is(run.Err, site.ErrRootNotFound) {
		return fmt.Errorf("output directory %q does not exist; run the site build first", run.Root)
	}
	return fmt.Errorf("check %s: %w", run.Root, run.Err)
}

// openOutput returns the report destination and a function closing it.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// saveRun records a finished run in the history database.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.HistoryDB, run *pipeline.Run, at time.Time, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	root, err := historyKey(run.Root)
	if err != nil {
		return err
	}

	fingerprint, err := report.Fingerprint(run.Result)
	if err != nil {
		return fmt.Errorf("failed to fingerprint report: %w", err)
	}

	id, err := db.SaveRun(ctx, root, run.Result, fingerprint, at)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to history", "root", run.Root, "id", id, "db", db.Path())
	return nil
}

// historyKey returns the absolute path under which runs of root are stored.
func historyKey(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return abs, nil
}
