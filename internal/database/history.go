package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/linkcheck/internal/model"
)

const (
	// DBFileName is the name of the history database inside the data directory.
	DBFileName = "linkcheck.db"

	// timestampLayout has fixed-width fractional seconds so stored
	// timestamps sort lexically in time order.
	timestampLayout = "2006-01-02T15:04:05.000000000Z"
)

// HistoryDB provides SQLite-based storage for run summaries.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ErrDBNotFound is returned by Open when the database does not exist and
// CreateIfNotExists is false.
var ErrDBNotFound = errors.New("history database not found")

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDBNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per saved check of one output directory
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		pages INTEGER NOT NULL,
		links_total INTEGER NOT NULL,
		links_broken INTEGER NOT NULL,
		fragments_total INTEGER NOT NULL,
		fragments_broken INTEGER NOT NULL,
		fragments_skipped INTEGER NOT NULL,
		ok INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored run summary.
type RunRecord struct {
	ID               int64
	Root             string
	Timestamp        time.Time
	Pages            int
	LinksTotal       int
	LinksBroken      int
	FragmentsTotal   int
	FragmentsBroken  int
	FragmentsSkipped int
	OK               bool
	Fingerprint      string
}

// SaveRun stores the result of one check of root. at is the time of the
// check. It returns the new run ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, root string, result *model.Result, fingerprint string, at time.Time) (int64, error) {
	reportJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize result: %w", err)
	}

	query := `
	INSERT INTO runs (root, timestamp, pages, links_total, links_broken,
		fragments_total, fragments_broken, fragments_skipped, ok, fingerprint, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		root,
		at.UTC().Format(timestampLayout),
		result.Pages,
		result.Links.Total,
		result.Links.Broken,
		result.Fragments.Total,
		result.Fragments.Broken,
		result.Fragments.Skipped,
		result.OK(),
		fingerprint,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the runs recorded for root, newest first.
// A limit of zero or less returns every run.
func (hdb *HistoryDB) ListRuns(ctx context.Context, root string, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, root, timestamp, pages, links_total, links_broken,
		fragments_total, fragments_broken, fragments_skipped, ok, fingerprint
	FROM runs
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	`
	args := []any{root}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0)
	for rows.Next() {
		var rec RunRecord
		var timestamp string
		err := rows.Scan(
			&rec.ID,
			&rec.Root,
			&timestamp,
			&rec.Pages,
			&rec.LinksTotal,
			&rec.LinksBroken,
			&rec.FragmentsTotal,
			&rec.FragmentsBroken,
			&rec.FragmentsSkipped,
			&rec.OK,
			&rec.Fingerprint,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.Timestamp = parseTimestamp(timestamp)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetRunResult returns the stored result of a run, or nil if no run has
// that ID.
func (hdb *HistoryDB) GetRunResult(ctx context.Context, id int64) (*model.Result, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, "SELECT report_json FROM runs WHERE id = ?", id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var result model.Result
	if err := json.Unmarshal([]byte(reportJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return &result, nil
}

// ListRoots returns every output directory that has saved runs.
func (hdb *HistoryDB) ListRoots(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, "SELECT DISTINCT root FROM runs ORDER BY root")
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	roots := make([]string, 0)
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		roots = append(roots, root)
	}
	return roots, rows.Err()
}

// DeleteRuns removes every run recorded for root and returns how many
// were removed.
func (hdb *HistoryDB) DeleteRuns(ctx context.Context, root string) (int64, error) {
	res, err := hdb.db.ExecContext(ctx, "DELETE FROM runs WHERE root = ?", root)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}
	return res.RowsAffected()
}

// timestampFormats are the layouts SQLite may hand back for a timestamp
// column, tried in order.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
}

// parseTimestamp parses a stored timestamp, returning the zero time when
// no layout matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
