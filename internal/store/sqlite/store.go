// Package sqlite is the default record backend: a single-row SQLite table
// standing in for the browser-local storage the intake wizard historically
// relied on. One row, one JSON payload, one timestamp.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rvanheerden/go-autoquote/internal/core"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// recordKey pins the table to a single row; the wizard has exactly one
// session's record.
const recordKey = 1

const schema = `
CREATE TABLE IF NOT EXISTS applicant_record (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL,
	saved_at TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and prepares
// the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (core.ApplicantRecord, time.Time, error) {
	var data, savedAtStr string
	err := s.db.QueryRowContext(ctx,
		`SELECT data, saved_at FROM applicant_record WHERE id = ?`, recordKey,
	).Scan(&data, &savedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ApplicantRecord{}, time.Time{}, core.ErrNotFound
	}
	if err != nil {
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("applicant_record.select: %w", err)
	}

	var rec core.ApplicantRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("%w: %v", core.ErrCorruptData, err)
	}

	savedAt, err := time.Parse(time.RFC3339Nano, savedAtStr)
	if err != nil {
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("%w: bad saved_at %q", core.ErrCorruptData, savedAtStr)
	}

	return rec, savedAt, nil
}

func (s *Store) Save(ctx context.Context, rec core.ApplicantRecord, savedAt time.Time) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("applicant_record.marshal: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO applicant_record (id, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		recordKey, string(data), savedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("applicant_record.upsert: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM applicant_record WHERE id = ?`, recordKey); err != nil {
		return fmt.Errorf("applicant_record.delete: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
