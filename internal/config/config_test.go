package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPSHELL_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "appshell", "appshell.db"), cfg.Database.Path)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.UI.StartRoute)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://localhost:9999"
timeout = "3s"

[ui]
start_route = "diary-list"
`), 0o644))
	t.Setenv("APPSHELL_CONFIG", path)
	t.Setenv("APPSHELL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "diary-list", cfg.UI.StartRoute)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPSHELL_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("APPSHELL_CONFIG", path)

	want := Config{
		Database: DatabaseConfig{Path: "/tmp/x.db"},
		API:      APIConfig{BaseURL: "http://api", Timeout: 5 * time.Second, RequestsPerSecond: 1.5, Burst: 3},
		Log:      LogConfig{Path: "/tmp/x.log", Level: "warn"},
		UI:       UIConfig{StartRoute: "pomodoro-timer", DateFormat: "02/01", Currency: "€"},
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
