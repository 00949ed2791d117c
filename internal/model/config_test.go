package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/project_a", cfg.API.BaseURL)
	assert.Equal(t, "/topic/status-agentes", cfg.Socket.Topic)
	assert.Equal(t, 5, cfg.Socket.ReconnectDelaySec)
	assert.Equal(t, 4, cfg.Socket.HeartbeatSec)
	assert.Equal(t, 50, cfg.Notifications.Max)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("api:\n  base_url: https://helpdesk.example.com/api/project_a\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://helpdesk.example.com/api/project_a", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "ws://localhost:8080/ws", cfg.Socket.URL)
	assert.Equal(t, 50, cfg.Notifications.Max)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.API.BaseURL = "https://helpdesk.example.com/api/project_a"
	cfg.Notifications.Max = 25

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://helpdesk.example.com/api/project_a", loaded.API.BaseURL)
	assert.Equal(t, 25, loaded.Notifications.Max)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
