// Package store persists benchmark results in the canonical on-disk layout:
//
//	<base>/benchmarks/output/summary.md
//	<base>/benchmarks/output/raw/results-<YYYYMMDD_HHMMSS>.json
//	<base>/benchmarks/output/raw/results-latest.json
//
// The latest pointer is overwritten on every save; history files accumulate.
// Writes are not transactional: the tool runs as a single exclusive process.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hubbench/internal/result"
)

const (
	OutputDir   = "benchmarks/output"
	RawDir      = "benchmarks/output/raw"
	SummaryFile = "summary.md"
	LatestFile  = "results-latest.json"

	// timestampLayout sorts lexicographically in chronological order.
	timestampLayout = "20060102_150405"
)

// FileStore writes and reads result files under a base directory.
type FileStore struct {
	base string
}

func NewFileStore(base string) *FileStore {
	return &FileStore{base: base}
}

// EnsureLayout idempotently creates the output and raw-history directories,
// returning the output directory path.
func (s *FileStore) EnsureLayout() (string, error) {
	outputDir := filepath.Join(s.base, OutputDir)
	rawDir := filepath.Join(s.base, RawDir)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create raw output directory %s: %w", rawDir, err)
	}
	return outputDir, nil
}

// WriteJSON serializes results as a pretty-printed JSON array.
func WriteJSON(results []result.Result, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results to %s: %w", path, err)
	}
	return nil
}

// WriteSummary renders the markdown report to path.
func WriteSummary(results []result.Result, path, title string) error {
	if err := os.WriteFile(path, []byte(GenerateMarkdown(results, title)), 0o644); err != nil {
		return fmt.Errorf("failed to write summary to %s: %w", path, err)
	}
	return nil
}

// Save writes the summary, a timestamped history file, and overwrites the
// latest pointer with the same content.
func (s *FileStore) Save(results []result.Result) error {
	outputDir, err := s.EnsureLayout()
	if err != nil {
		return err
	}
	rawDir := filepath.Join(s.base, RawDir)

	if err := WriteSummary(results, filepath.Join(outputDir, SummaryFile), "Connector Hub Benchmark Results"); err != nil {
		return err
	}

	stamp := time.Now().UTC().Format(timestampLayout)
	historyPath := filepath.Join(rawDir, fmt.Sprintf("results-%s.json", stamp))
	if err := WriteJSON(results, historyPath); err != nil {
		return err
	}

	if err := WriteJSON(results, filepath.Join(rawDir, LatestFile)); err != nil {
		return err
	}

	slog.Info("saved benchmark results", "count", len(results), "dir", outputDir)
	return nil
}

// ReadJSON is the inverse of WriteJSON. A structurally mismatched file
// surfaces as a deserialization error.
func ReadJSON(path string) ([]result.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results from %s: %w", path, err)
	}

	var results []result.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to deserialize results from %s: %w", path, err)
	}
	return results, nil
}

// LatestPath returns the path of the latest-pointer file.
func (s *FileStore) LatestPath() string {
	return filepath.Join(s.base, RawDir, LatestFile)
}

// ReadLatest loads the most recent saved result set, or (nil, nil) when no
// save has happened yet. Absence is a state, not an error.
func (s *FileStore) ReadLatest() ([]result.Result, error) {
	path := s.LatestPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return ReadJSON(path)
}

// ListHistory returns the history file paths sorted lexicographically, which
// is chronological given the timestamp layout. A missing directory yields an
// empty listing.
func (s *FileStore) ListHistory() ([]string, error) {
	rawDir := filepath.Join(s.base, RawDir)

	entries, err := os.ReadDir(rawDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list history in %s: %w", rawDir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == LatestFile {
			continue
		}
		files = append(files, filepath.Join(rawDir, name))
	}
	sort.Strings(files)
	return files, nil
}
