package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubbench/internal/result"
	"hubbench/internal/store"
)

func TestHistoryCmdEmpty(t *testing.T) {
	viper.Set("output", t.TempDir())
	viper.Set("db.backend", "")

	buf := new(bytes.Buffer)
	historyCmd.SetOut(buf)
	historyCmd.SetErr(buf)

	err := historyCmd.RunE(historyCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No saved runs found")
}

func TestHistoryCmdListsSavedRuns(t *testing.T) {
	dir := t.TempDir()
	viper.Set("output", dir)
	viper.Set("db.backend", "")

	fs := store.NewFileStore(dir)
	require.NoError(t, fs.Save([]result.Result{
		result.New("cache-operations", result.Map{"mean_ns": float64(90)}),
	}))

	buf := new(bytes.Buffer)
	historyCmd.SetOut(buf)
	historyCmd.SetErr(buf)

	err := historyCmd.RunE(historyCmd, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "results-")
	assert.NotContains(t, out, store.LatestFile)
}
