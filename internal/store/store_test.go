package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hubbench/internal/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []result.Result {
	ts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	return []result.Result{
		result.WithTimestamp("provider-resolution", result.Map{
			"mean_ns":    float64(1500),
			"p99_ns":     float64(4200),
			"throughput": 666666.6,
			"status":     "simulated",
		}, ts),
		result.WithTimestamp("cache-operations", result.Map{
			"status": "failed",
			"error":  "boom",
		}, ts),
	}
}

func TestEnsureLayout(t *testing.T) {
	base := t.TempDir()
	s := NewFileStore(base)

	outputDir, err := s.EnsureLayout()
	require.NoError(t, err)

	assert.DirExists(t, outputDir)
	assert.DirExists(t, filepath.Join(base, RawDir))

	// idempotent
	_, err = s.EnsureLayout()
	assert.NoError(t, err)
}

func TestWriteAndReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	in := sampleResults()

	require.NoError(t, WriteJSON(in, path))

	out, err := ReadJSON(path)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, in[0].TargetID, out[0].TargetID)
	assert.True(t, in[0].Timestamp.Equal(out[0].Timestamp))
	assert.Equal(t, map[string]any(in[0].Metrics), map[string]any(out[0].Metrics))
	assert.False(t, out[1].IsSuccess())
}

func TestReadJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	_, err := ReadJSON(path)
	assert.ErrorContains(t, err, "deserialize")
}

func TestReadJSONMissing(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestSaveWritesCanonicalLayout(t *testing.T) {
	base := t.TempDir()
	s := NewFileStore(base)

	require.NoError(t, s.Save(sampleResults()))

	assert.FileExists(t, filepath.Join(base, OutputDir, SummaryFile))
	assert.FileExists(t, s.LatestPath())

	history, err := s.ListHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)

	// latest pointer matches the history file content
	latest, err := s.ReadLatest()
	require.NoError(t, err)
	fromHistory, err := ReadJSON(history[0])
	require.NoError(t, err)
	assert.Equal(t, fromHistory, latest)
}

func TestReadLatestAbsent(t *testing.T) {
	s := NewFileStore(t.TempDir())

	results, err := s.ReadLatest()
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestListHistoryMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "never-created"))

	files, err := s.ListHistory()
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestListHistorySortedAndExcludesLatest(t *testing.T) {
	base := t.TempDir()
	s := NewFileStore(base)
	_, err := s.EnsureLayout()
	require.NoError(t, err)

	rawDir := filepath.Join(base, RawDir)
	for _, name := range []string{"results-20260102_000000.json", "results-20260101_000000.json", LatestFile, "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(rawDir, name), []byte("[]"), 0o644))
	}

	files, err := s.ListHistory()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files[0], "20260101")
	assert.Contains(t, files[1], "20260102")
}

func TestGenerateMarkdown(t *testing.T) {
	md := GenerateMarkdown(sampleResults(), "Test Report")

	assert.Contains(t, md, "# Test Report")
	assert.Contains(t, md, "Run at: 2026-06-01 12:00:00 UTC")
	assert.Contains(t, md, "Total: 2 | Successful: 1 | Failed: 1")
	assert.Contains(t, md, "## [OK] provider-resolution")
	assert.Contains(t, md, "## [FAIL] cache-operations")
	assert.Contains(t, md, "Error: boom")
	assert.Contains(t, md, "**mean_ns**: 1500.00")
}

func TestGenerateMarkdownNested(t *testing.T) {
	results := []result.Result{
		result.New("cache-operations", result.Map{
			"key_generation": result.Map{"mean_ns": uint64(42)},
			"status":         "simulated",
		}),
	}

	md := GenerateMarkdown(results, "")

	assert.Contains(t, md, "# Benchmark Results")
	assert.Contains(t, md, "- **key_generation**:")
	assert.Contains(t, md, "  - **mean_ns**: 42")
}
