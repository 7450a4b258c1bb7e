// Test Type: Unit Test
// Description: Tests for configuration layering - defaults, file,
// environment, and flag overrides

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hoopdev/ktaga-lab/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chtemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chtemp(t)

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.ManifestPath)
	assert.Equal(t, "127.0.0.1", cfg.Runtime.BindAddress)
	assert.Equal(t, 8888, cfg.Runtime.Port)
	assert.Equal(t, "/home/jovyan/work", cfg.Runtime.WorkingDir)
	assert.True(t, cfg.Runtime.NoBrowser)
	assert.False(t, cfg.Runtime.AllowRoot)
	assert.False(t, cfg.Runtime.TokenEnabled())
}

func TestLoadConfigFile(t *testing.T) {
	chtemp(t)

	path := filepath.Join(t.TempDir(), "lab.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
ip = "0.0.0.0"
port = 9999
token = "s3cret"

[manifest]
path = "custom.toml"
`), 0644))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Runtime.BindAddress)
	assert.Equal(t, 9999, cfg.Runtime.Port)
	assert.Equal(t, "s3cret", cfg.Runtime.Token)
	assert.Equal(t, "custom.toml", cfg.ManifestPath)
}

func TestLoadProbesWorkingDirectory(t *testing.T) {
	chtemp(t)
	require.NoError(t, os.WriteFile(".ktaga-lab.toml", []byte(`
[server]
port = 9090
`), 0644))

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Runtime.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chtemp(t)
	require.NoError(t, os.WriteFile("ktaga-lab.toml", []byte(`
[server]
port = 9090
`), 0644))
	t.Setenv("KTAGA_SERVER_PORT", "7777")
	t.Setenv("KTAGA_IMAGE_BASE", "jupyter/scipy-notebook:latest")

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Runtime.Port)
	assert.Equal(t, "jupyter/scipy-notebook:latest", cfg.Runtime.BaseImage)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	chtemp(t)
	t.Setenv("KTAGA_SERVER_PORT", "7777")

	cfg, err := config.Load("", map[string]interface{}{
		"server.port":   8080,
		"server.ip":     "0.0.0.0",
		"server.root":   true,
		"manifest.path": "flagged.toml",
	})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Runtime.Port)
	assert.Equal(t, "0.0.0.0", cfg.Runtime.BindAddress)
	assert.True(t, cfg.Runtime.AllowRoot)
	assert.Equal(t, "flagged.toml", cfg.ManifestPath)
}

func TestLoadMissingConfigFile(t *testing.T) {
	chtemp(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	assert.Error(t, err)
}
