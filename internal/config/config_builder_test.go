package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result, earlier configs taking precedence over
// later ones for fields both have set.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Remote: Remote{BaseURL: "https://first.example.com", AnonKey: "first_key"},
		},
		&StructuredConfig{
			Remote:  Remote{BaseURL: "https://second.example.com"},
			Storage: Storage{DB: DB{DSN: "/data/journal.db"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "https://first.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "first_key", cfg.Remote.AnonKey)
	assert.Equal(t, "/data/journal.db", cfg.Storage.DB.DSN)
}

// TestBuild_AppliesDefaults verifies that unset fields receive their
// documented defaults after merging.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Remote: Remote{BaseURL: "https://abc.supabase.co", AnonKey: "anon_secret"},
	})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.App.SyncInterval)
	assert.Equal(t, 15*time.Second, cfg.App.ProbeInterval)
	assert.Equal(t, "journal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "sync-state.json", cfg.Storage.StatePath)
	assert.Equal(t, 15*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "127.0.0.1:8723", cfg.API.Address)
}

// TestBuild_ValidatesRemote verifies that a config without remote endpoint
// settings is rejected.
func TestBuild_ValidatesRemote(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrRemoteBaseURLRequired)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Remote: Remote{BaseURL: "https://abc.supabase.co"},
	})
	cfg, err = b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrRemoteAnonKeyRequired)
}
