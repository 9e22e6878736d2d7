package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/linkcheck/internal/config"
	"github.com/nao1215/linkcheck/internal/database"
	"github.com/nao1215/linkcheck/internal/model"
	"github.com/nao1215/linkcheck/internal/report"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of runs listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [dir]",
		Short: "Show recorded link check runs",
		Long: `History lists the runs recorded with 'linkcheck check --save' for an output
directory, newest first. The history is never used when checking; it only
helps to see when links broke or were fixed.

Examples:
  # List runs of ./dist
  linkcheck history

  # Show the report stored for run 12
  linkcheck history --show 12

  # What broke or was fixed since the previous run
  linkcheck history --compare

  # List every output directory with recorded runs
  linkcheck history --roots`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().BoolP("roots", "L", false,
		"List every output directory with recorded runs")
	cmd.Flags().Int64("show", 0,
		"Print the report stored for the run with this ID")
	cmd.Flags().BoolP("compare", "C", false,
		"Compare the two most recent runs")
	cmd.Flags().Bool("clear", false,
		"Delete every recorded run of the output directory")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	listRoots, err := flags.GetBool("roots")
	if err != nil {
		return err
	}
	showID, err := flags.GetInt64("show")
	if err != nil {
		return err
	}
	compare, err := flags.GetBool("compare")
	if err != nil {
		return err
	}
	clearRuns, err := flags.GetBool("clear")
	if err != nil {
		return err
	}

	root := config.DefaultRoot
	if len(args) > 0 {
		root = args[0]
	}
	key, err := historyKey(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, database.ErrDBNotFound) {
		fmt.Fprintln(out, "No runs recorded yet. Use 'linkcheck check --save' to record one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	switch {
	case listRoots:
		return printRoots(ctx, out, db)
	case showID > 0:
		return printStoredRun(ctx, out, db, showID)
	case compare:
		return printComparison(ctx, out, db, key)
	case clearRuns:
		n, err := db.DeleteRuns(ctx, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d run(s) of %s\n", n, key)
		return nil
	default:
		return printRuns(ctx, out, db, key, limit)
	}
}

// printRoots lists every output directory with recorded runs.
func printRoots(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	roots, err := db.ListRoots(ctx)
	if err != nil {
		return err
	}

	if len(roots) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "Output directories in %s (%d):\n\n", db.Path(), len(roots))
	for _, root := range roots {
		fmt.Fprintf(out, "  %s\n", root)
	}
	return nil
}

// printRuns lists the runs of one output directory, newest first.
func printRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, root string, limit int) error {
	runs, err := db.ListRuns(ctx, root, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded for %s\n", root)
		return nil
	}

	fmt.Fprintf(out, "Runs of %s (%d):\n\n", root, len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-6s  %6s  %8s  %9s  %s\n",
		"ID", "Date", "Status", "Pages", "Broken", "Fragments", "Fingerprint")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 78))

	for _, run := range runs {
		status := "PASS"
		if !run.OK {
			status = "FAIL"
		}
		fmt.Fprintf(out, "  %-6d  %-20s  %-6s  %6d  %8d  %9d  %s\n",
			run.ID,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			status,
			run.Pages,
			run.LinksBroken,
			run.FragmentsBroken,
			shortFingerprint(run.Fingerprint),
		)
	}
	return nil
}

// printStoredRun prints the text report of a recorded run.
func printStoredRun(ctx context.Context, out io.Writer, db *database.HistoryDB, id int64) error {
	result, err := db.GetRunResult(ctx, id)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("no run with ID %d", id)
	}

	_, err = report.NewSimpleWriter(out).Write(result)
	return err
}

// printComparison compares the two most recent runs of root.
func printComparison(ctx context.Context, out io.Writer, db *database.HistoryDB, root string) error {
	runs, err := db.ListRuns(ctx, root, 2)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		return fmt.Errorf("need at least two recorded runs of %s to compare, found %d", root, len(runs))
	}

	current, err := db.GetRunResult(ctx, runs[0].ID)
	if err != nil {
		return err
	}
	previous, err := db.GetRunResult(ctx, runs[1].ID)
	if err != nil {
		return err
	}

	c := model.Compare(previous, current)
	fmt.Fprintf(out, "Run %d compared with run %d\n", runs[0].ID, runs[1].ID)

	if !c.Changed() {
		fmt.Fprintf(out, "\nNo change (%d violation(s) in both runs)\n", c.Unchanged)
		return nil
	}
	writeComparisonSection(out, "Newly broken", c.Introduced)
	writeComparisonSection(out, "Fixed", c.Resolved)
	fmt.Fprintf(out, "\nUnchanged: %d\n", c.Unchanged)
	return nil
}

func writeComparisonSection(out io.Writer, title string, vs []model.Violation) {
	if len(vs) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s (%d):\n", title, len(vs))
	for _, v := range vs {
		fmt.Fprintf(out, "  [%s] %s\n", v.Kind, v.Link)
	}
}

// shortFingerprint returns the first 12 characters of a fingerprint.
func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
