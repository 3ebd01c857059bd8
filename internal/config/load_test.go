package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(""))

	assert.Equal(t, 1000, viper.GetInt("iterations"))
	assert.Equal(t, 100, viper.GetInt("warmup_iterations"))
	assert.Equal(t, "npm", viper.GetString("bridge.command"))
	assert.Equal(t, ".", viper.GetString("bridge.dir"))
	assert.Equal(t, "", viper.GetString("metrics.addr"))
	assert.Equal(t, "#benchmarks", viper.GetString("notifications.slack.channel"))
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("HUBBENCH_ITERATIONS", "250")
	t.Setenv("HUBBENCH_BRIDGE_COMMAND", "pnpm")

	require.NoError(t, Load(""))

	assert.Equal(t, 250, viper.GetInt("iterations"))
	assert.Equal(t, "pnpm", viper.GetString("bridge.command"))
}

func TestLoadConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "hubbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 42\nbridge:\n  dir: /opt/hub\n"), 0o644))

	require.NoError(t, Load(path))

	assert.Equal(t, 42, viper.GetInt("iterations"))
	assert.Equal(t, "/opt/hub", viper.GetString("bridge.dir"))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
