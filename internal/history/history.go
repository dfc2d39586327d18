// Package history persists per-unit build outcomes in SQLite so past runs
// can be inspected after the process exits.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/aoc2020/internal/build"
)

// Entry is one recorded unit build.
type Entry struct {
	ID         int64         `json:"id"`
	JobID      string        `json:"job_id"`
	Unit       string        `json:"unit"`
	Trigger    build.Trigger `json:"trigger"`
	Status     build.Status  `json:"status"`
	Artifact   string        `json:"artifact,omitempty"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Filter narrows a List query. Zero values mean "no constraint".
type Filter struct {
	Unit  string
	Limit int
}

// Store records build outcomes in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (and initializes) the database at path.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	// "trigger" is reserved in SQL, hence trigger_kind.
	schema := `
	CREATE TABLE IF NOT EXISTS unit_builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT NOT NULL,
		unit TEXT NOT NULL,
		trigger_kind TEXT NOT NULL,
		status TEXT NOT NULL,
		artifact TEXT,
		duration_ms INTEGER NOT NULL,
		error TEXT,
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_unit_builds_unit ON unit_builds(unit);
	CREATE INDEX IF NOT EXISTS idx_unit_builds_job_id ON unit_builds(job_id);
	CREATE INDEX IF NOT EXISTS idx_unit_builds_recorded_at ON unit_builds(recorded_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordReport appends one entry per unit result in the report.
func (s *Store) RecordReport(ctx context.Context, jobID string, trigger build.Trigger, report *build.Report) error {
	if report == nil || len(report.Results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().Unix()
	for _, result := range report.Results {
		errMsg := ""
		if result.Err != nil {
			errMsg = result.Err.Error()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO unit_builds (job_id, unit, trigger_kind, status, artifact, duration_ms, error, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			jobID, result.Unit, string(trigger), string(result.Status), result.Artifact, result.Duration.Milliseconds(), errMsg, now,
		)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return nil
}

// List retrieves recorded entries, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, job_id, unit, trigger_kind, status, artifact, duration_ms, error, recorded_at FROM unit_builds"
	var args []any
	if filter.Unit != "" {
		query += " WHERE unit = ?"
		args = append(args, filter.Unit)
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var trigger, status string
		var durationMS, recordedUnix int64

		err := rows.Scan(&e.ID, &e.JobID, &e.Unit, &trigger, &status, &e.Artifact, &durationMS, &e.Error, &recordedUnix)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		e.Trigger = build.Trigger(trigger)
		e.Status = build.Status(status)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.RecordedAt = time.Unix(recordedUnix, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
