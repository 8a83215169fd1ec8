// Package history records generated reports in a SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/report"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Entry is one generated report.
type Entry struct {
	ID          string
	Browser     string
	Outcome     core.Outcome
	GeneratedAt time.Time
	Path        string
	Cases       int
	Found       int
	Expected    int
}

// EntryFromResult converts a generation result into a history entry.
func EntryFromResult(res *report.Result) Entry {
	return Entry{
		ID:          res.Data.ReportID,
		Browser:     res.Data.Browser,
		Outcome:     res.Data.Outcome,
		GeneratedAt: res.Data.GeneratedAt,
		Path:        res.HTMLPath,
		Cases:       res.Data.Totals.Cases,
		Found:       res.Data.Totals.ScreenshotsFound,
		Expected:    res.Data.Totals.ScreenshotsExpected,
	}
}

// Store manages the report history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout=5000", "PRAGMA journal_mode=WAL"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts e. An empty ID is replaced with a new UUID; the stored ID is
// returned.
func (s *Store) Record(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.GeneratedAt.IsZero() {
		e.GeneratedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, browser, outcome, generated_at, path, cases, found, expected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Browser, e.Outcome.String(), e.GeneratedAt.UTC(), e.Path, e.Cases, e.Found, e.Expected)
	if err != nil {
		return "", fmt.Errorf("record report %s: %w", e.ID, err)
	}
	return e.ID, nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, browser, outcome, generated_at, path, cases, found, expected
		FROM reports ORDER BY generated_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var outcome string
		if err := rows.Scan(&e.ID, &e.Browser, &outcome, &e.GeneratedAt, &e.Path, &e.Cases, &e.Found, &e.Expected); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		e.Outcome = parseOutcome(outcome)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("report not found")

// Get returns the entry with the given id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	var outcome string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, browser, outcome, generated_at, path, cases, found, expected
		FROM reports WHERE id = ?`, id).
		Scan(&e.ID, &e.Browser, &outcome, &e.GeneratedAt, &e.Path, &e.Cases, &e.Found, &e.Expected)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get report %s: %w", id, err)
	}
	e.Outcome = parseOutcome(outcome)
	return e, nil
}

func parseOutcome(s string) core.Outcome {
	o, err := core.ParseOutcome(s)
	if err != nil {
		return core.OutcomeUnknown
	}
	return o
}
