package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, string(TabActive), cfg.Display.DefaultTab)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "storage:\n  driver: file\n  path: /tmp/tasks.json\ndisplay:\n  default_tab: completed\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/tasks.json", cfg.Storage.Path)
	assert.Equal(t, "completed", cfg.Display.DefaultTab)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoadConfig_InvalidTabFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  default_tab: inbox\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, string(TabActive), cfg.Display.DefaultTab)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TASKTRACKER_STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &AppConfig{
		Storage: StorageConfig{Driver: "file", Path: "/data/tasks.json"},
		Server:  ServerConfig{Addr: ":9000"},
		Log:     LogConfig{File: "/tmp/tasktracker.log"},
		Display: DisplayConfig{DefaultTab: "deleted"},
	}

	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
