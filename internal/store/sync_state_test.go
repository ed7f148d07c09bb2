package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSyncStateStore_MissingFileReadsEmpty(t *testing.T) {
	s := NewFileSyncStateStore(filepath.Join(t.TempDir(), "state.json"))

	got, err := s.Get(LastSyncKey)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileSyncStateStore_SetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewFileSyncStateStore(path)

	require.NoError(t, s.Set(LastSyncKey, "2026-08-30T10:00:00Z"))

	got, err := s.Get(LastSyncKey)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30T10:00:00Z", got)
}

func TestFileSyncStateStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first := NewFileSyncStateStore(path)
	require.NoError(t, first.Set(LastSyncKey, "2026-08-30T10:00:00Z"))
	require.NoError(t, first.Set("device_id", "device-7"))

	// a fresh store over the same file sees the persisted values
	second := NewFileSyncStateStore(path)

	got, err := second.Get(LastSyncKey)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30T10:00:00Z", got)

	got, err = second.Get("device_id")
	require.NoError(t, err)
	assert.Equal(t, "device-7", got)
}

func TestFileSyncStateStore_OverwritesValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewFileSyncStateStore(path)

	require.NoError(t, s.Set(LastSyncKey, "2026-08-29T00:00:00Z"))
	require.NoError(t, s.Set(LastSyncKey, "2026-08-30T00:00:00Z"))

	got, err := s.Get(LastSyncKey)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30T00:00:00Z", got)
}

func TestFileSyncStateStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s := NewFileSyncStateStore(path)

	require.NoError(t, s.Set(LastSyncKey, "2026-08-30T10:00:00Z"))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileSyncStateStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileSyncStateStore(path)

	_, err := s.Get(LastSyncKey)
	assert.Error(t, err)
}
