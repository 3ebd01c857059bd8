package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the index database at path and
// applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		target_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL,
		history_path TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordRun(rec RunRecord) error {
	query := `INSERT INTO runs (started_at, target_count, failed_count, history_path) VALUES (?, ?, ?, ?)`
	_, err := s.db.Exec(query, rec.StartedAt.UTC(), rec.TargetCount, rec.FailedCount, rec.HistoryPath)
	return err
}

func (s *SQLiteStore) ListRuns(limit int) ([]RunRecord, error) {
	query := `SELECT id, started_at, target_count, failed_count, history_path FROM runs ORDER BY started_at DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started time.Time
		if err := rows.Scan(&rec.ID, &started, &rec.TargetCount, &rec.FailedCount, &rec.HistoryPath); err != nil {
			return nil, err
		}
		rec.StartedAt = started.UTC()
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}
