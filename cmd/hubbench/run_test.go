package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubbench/internal/store"
	"hubbench/internal/target"
)

// stubDelegate is never reachable over the bridge, forcing every target onto
// its simulated workload.
func setupRunTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	viper.Set("output", dir)
	viper.Set("iterations", 40)
	viper.Set("warmup_iterations", 4)
	viper.Set("bridge.command", filepath.Join(dir, "definitely-missing-binary"))
	viper.Set("bridge.dir", dir)
	viper.Set("db.backend", "")
	viper.Set("notifications.slack.enabled", false)
	return dir
}

func resetRunFlags() {
	runTargets = nil
	runSave = true
	runNotify = false
	runMetricsAddr = ""
}

func TestRunCmdAllTargets(t *testing.T) {
	dir := setupRunTest(t)
	resetRunFlags()
	defer resetRunFlags()

	buf := new(bytes.Buffer)
	runCmd.SetOut(buf)
	runCmd.SetErr(buf)
	runCmd.SetContext(context.Background())

	err := runRun(runCmd, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Benchmark Results")
	assert.Contains(t, out, "provider-resolution")
	assert.Contains(t, out, "stream-parsing")
	assert.Contains(t, out, "Results saved")
	assert.Contains(t, out, "5 targets, 5 succeeded, 0 failed")

	// Save layout is fully materialized.
	assert.FileExists(t, filepath.Join(dir, store.OutputDir, store.SummaryFile))
	assert.FileExists(t, filepath.Join(dir, store.RawDir, store.LatestFile))

	entries, err := os.ReadDir(filepath.Join(dir, store.RawDir))
	require.NoError(t, err)
	assert.Len(t, entries, 2) // one history file plus the latest pointer
}

func TestRunCmdTargetSelection(t *testing.T) {
	setupRunTest(t)
	resetRunFlags()
	defer resetRunFlags()

	runTargets = []string{"cache-operations"}
	runSave = false

	buf := new(bytes.Buffer)
	runCmd.SetOut(buf)
	runCmd.SetErr(buf)
	runCmd.SetContext(context.Background())

	err := runRun(runCmd, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "cache-operations")
	assert.NotContains(t, out, "provider-resolution")
	assert.Contains(t, out, "1 targets, 1 succeeded, 0 failed")
	assert.NotContains(t, out, "Results saved")
}

func TestRunCmdUnknownTarget(t *testing.T) {
	setupRunTest(t)
	resetRunFlags()
	defer resetRunFlags()

	runTargets = []string{"no-such-target"}

	runCmd.SetContext(context.Background())
	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no targets match")
	assert.Contains(t, err.Error(), "provider-resolution")
}

func TestRunCmdRegistryInjection(t *testing.T) {
	setupRunTest(t)
	resetRunFlags()
	defer func() {
		resetRunFlags()
		newRegistryFunc = target.NewRegistry
	}()

	var gotDir string
	newRegistryFunc = func(d target.Delegate, hubDir string, cfg target.Config) *target.Registry {
		gotDir = hubDir
		return target.NewRegistry(d, hubDir, cfg)
	}
	runTargets = []string{"stream-parsing"}
	runSave = false

	buf := new(bytes.Buffer)
	runCmd.SetOut(buf)
	runCmd.SetErr(buf)
	runCmd.SetContext(context.Background())

	require.NoError(t, runRun(runCmd, nil))
	assert.Equal(t, viper.GetString("bridge.dir"), gotDir)
}
