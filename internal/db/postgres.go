package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver
)

// PostgresStore implements Store on a shared Postgres instance, for teams
// that aggregate run history from more than one machine.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects with the given DSN and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id BIGSERIAL PRIMARY KEY,
		started_at TIMESTAMPTZ NOT NULL,
		target_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL,
		history_path TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) RecordRun(rec RunRecord) error {
	query := `INSERT INTO runs (started_at, target_count, failed_count, history_path) VALUES ($1, $2, $3, $4)`
	_, err := s.db.Exec(query, rec.StartedAt.UTC(), rec.TargetCount, rec.FailedCount, rec.HistoryPath)
	return err
}

func (s *PostgresStore) ListRuns(limit int) ([]RunRecord, error) {
	query := `SELECT id, started_at, target_count, failed_count, history_path FROM runs ORDER BY started_at DESC LIMIT $1`
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
