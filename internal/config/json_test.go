package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Durations in JSON may be strings like "30s" or raw nanosecond numbers.
	jsonBody := `{
		"app": {
			"sync_interval": "10m",
			"probe_interval": "30s"
		},
		"storage": {
			"db": { "dsn": "/data/journal.db" },
			"state_path": "/data/sync-state.json"
		},
		"remote": {
			"base_url": "https://abc.supabase.co",
			"anon_key": "anon_secret",
			"request_timeout": "30s"
		},
		"api": {
			"address": "127.0.0.1:9000"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 10*time.Minute, cfg.App.SyncInterval)
	assert.Equal(t, 30*time.Second, cfg.App.ProbeInterval)

	assert.Equal(t, "/data/journal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/data/sync-state.json", cfg.Storage.StatePath)

	assert.Equal(t, "https://abc.supabase.co", cfg.Remote.BaseURL)
	assert.Equal(t, "anon_secret", cfg.Remote.AnonKey)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)

	assert.Equal(t, "127.0.0.1:9000", cfg.API.Address)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// 300000000000 ns == 5m
	jsonBody := `{"app": {"sync_interval": 300000000000}}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.App.SyncInterval)
}

func TestParseJSON_FileMissing(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestParseJSON_MalformedBody(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": `), 0o600))

	cfg, err := parseJSON(p)
	assert.Nil(t, cfg)
	assert.Error(t, err)
}
