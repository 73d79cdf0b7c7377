/*
Package sqlite persists the HTTP host's own data: holiday-calendar
definitions and generated report snapshots.

PURPOSE:
  The calculation engine itself is pure and keeps no state; what the server
  stores is its configuration (one holiday calendar per year, as JSON) and
  an audit trail of the reports it produced.

KEY TABLES:
  calendars:        one row per year, the JSON calendar definition
  report_snapshots: immutable record of each generated report
                    (request and result, both as JSON)

SNAPSHOTS ARE APPEND-ONLY:
  A snapshot records what was computed at a moment in time; there are no
  UPDATE or DELETE statements on report_snapshots.

WAL MODE:
  SQLite is opened with WAL so concurrent report reads don't block writes.

USAGE:
  store, err := sqlite.New("./data/recovery.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrCalendarNotFound is returned when no calendar is stored for a year.
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrReportNotFound is returned when a snapshot id does not exist.
	ErrReportNotFound = errors.New("report snapshot not found")
)

// ReportSnapshot is one persisted report computation.
type ReportSnapshot struct {
	ID          string
	CreatedAt   time.Time
	RequestJSON string
	ResultJSON  string
}

// Store persists calendars and report snapshots in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at the given path and migrates the
// schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calendars (
		year INTEGER PRIMARY KEY,
		config_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Report snapshots (append-only)
	CREATE TABLE IF NOT EXISTS report_snapshots (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		request_json TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_report_snapshots_created
		ON report_snapshots(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALENDARS
// =============================================================================

// SaveCalendar stores or replaces the calendar definition for a year.
func (s *Store) SaveCalendar(ctx context.Context, year int, configJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendars (year, config_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(year) DO UPDATE SET
			config_json = excluded.config_json,
			updated_at = excluded.updated_at`,
		year, configJSON, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save calendar %d: %w", year, err)
	}
	return nil
}

// GetCalendar returns the stored calendar definition for a year.
func (s *Store) GetCalendar(ctx context.Context, year int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var configJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT config_json FROM calendars WHERE year = ?`, year).Scan(&configJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("year %d: %w", year, ErrCalendarNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get calendar %d: %w", year, err)
	}
	return configJSON, nil
}

// ListCalendars returns all stored calendar definitions keyed by year.
func (s *Store) ListCalendars(ctx context.Context) (map[int]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT year, config_json FROM calendars ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	defer rows.Close()

	out := make(map[int]string)
	for rows.Next() {
		var year int
		var configJSON string
		if err := rows.Scan(&year, &configJSON); err != nil {
			return nil, fmt.Errorf("list calendars: %w", err)
		}
		out[year] = configJSON
	}
	return out, rows.Err()
}

// =============================================================================
// REPORT SNAPSHOTS
// =============================================================================

// SaveReport appends a report snapshot.
func (s *Store) SaveReport(ctx context.Context, snap ReportSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO report_snapshots (id, created_at, request_json, result_json)
		VALUES (?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UTC().Format(time.RFC3339), snap.RequestJSON, snap.ResultJSON)
	if err != nil {
		return fmt.Errorf("save report %s: %w", snap.ID, err)
	}
	return nil
}

// GetReport returns a snapshot by id.
func (s *Store) GetReport(ctx context.Context, id string) (ReportSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snap ReportSnapshot
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, request_json, result_json
		FROM report_snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &createdAt, &snap.RequestJSON, &snap.ResultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ReportSnapshot{}, fmt.Errorf("id %s: %w", id, ErrReportNotFound)
	}
	if err != nil {
		return ReportSnapshot{}, fmt.Errorf("get report %s: %w", id, err)
	}

	snap.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return ReportSnapshot{}, fmt.Errorf("get report %s: bad created_at: %w", id, err)
	}
	return snap, nil
}

// ListReports returns the most recent snapshots, newest first.
func (s *Store) ListReports(ctx context.Context, limit int) ([]ReportSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request_json, result_json
		FROM report_snapshots ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []ReportSnapshot
	for rows.Next() {
		var snap ReportSnapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &createdAt, &snap.RequestJSON, &snap.ResultJSON); err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		if snap.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("list reports: bad created_at: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
