// Package db keeps a queryable index of saved benchmark runs. The canonical
// record is always the file layout under benchmarks/output; the index only
// makes past runs cheap to list and filter.
package db

import "time"

// RunRecord is one saved result set.
type RunRecord struct {
	ID          int64     `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	TargetCount int       `json:"target_count"`
	FailedCount int       `json:"failed_count"`
	HistoryPath string    `json:"history_path"`
}

// Store is the run-index interface.
type Store interface {
	Close() error
	RecordRun(rec RunRecord) error
	ListRuns(limit int) ([]RunRecord, error)
}
