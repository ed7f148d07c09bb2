package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedID() string { return "fixed-id" }

func TestNewRecord_FillsDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	r := NewRecord(Record{}, fixedID, now)

	assert.Equal(t, "fixed-id", r.ID)
	assert.Equal(t, now, r.CreatedAt)
	assert.Equal(t, now, r.UpdatedAt)
	assert.Equal(t, SyncStatusPending, r.SyncStatus)
	assert.False(t, r.Deleted)
}

func TestNewRecord_KeepsProvidedValues(t *testing.T) {
	created := time.Date(2025, 7, 14, 8, 30, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	r := NewRecord(Record{
		ID:         "existing",
		CreatedAt:  created,
		UpdatedAt:  created,
		SyncStatus: SyncStatusSynced,
	}, fixedID, now)

	assert.Equal(t, "existing", r.ID)
	assert.Equal(t, created, r.CreatedAt)
	assert.Equal(t, created, r.UpdatedAt)
	assert.Equal(t, SyncStatusSynced, r.SyncStatus)
}

func TestRecord_MarkDeleted(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Minute)

	r := NewRecord(Record{}, fixedID, created)
	r.SyncStatus = SyncStatusSynced
	r.MarkDeleted(later)

	assert.True(t, r.Deleted)
	assert.Equal(t, SyncStatusPending, r.SyncStatus)
	assert.Equal(t, later, r.UpdatedAt)
}

func TestTrip_ApplyUpdate_PartialFieldsOnly(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Second)

	trip := Trip{
		Record:      NewRecord(Record{}, fixedID, created),
		Title:       "Norway",
		Description: "fjords",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-14",
	}
	trip.SyncStatus = SyncStatusSynced

	title := "Norway 2026"
	trip.ApplyUpdate(TripUpdate{Title: &title}, later)

	assert.Equal(t, "Norway 2026", trip.Title)
	// untouched fields keep their prior values
	assert.Equal(t, "fjords", trip.Description)
	assert.Equal(t, "2026-06-01", trip.StartDate)
	assert.Equal(t, "2026-06-14", trip.EndDate)

	assert.Equal(t, SyncStatusPending, trip.SyncStatus)
	assert.True(t, trip.UpdatedAt.After(created))
}

func TestEntry_ApplyUpdate_PartialFieldsOnly(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Second)

	lat, lon := 69.6492, 18.9553
	entry := Entry{
		Record:    NewRecord(Record{}, fixedID, created),
		TripID:    "trip-1",
		Title:     "Tromsø",
		Content:   "northern lights",
		Location:  "Tromsø, Norway",
		Latitude:  &lat,
		Longitude: &lon,
		Images:    []string{"img/aurora.jpg"},
	}

	content := "northern lights, finally"
	entry.ApplyUpdate(EntryUpdate{Content: &content}, later)

	assert.Equal(t, "northern lights, finally", entry.Content)
	assert.Equal(t, "Tromsø", entry.Title)
	assert.Equal(t, "trip-1", entry.TripID)
	require.NotNil(t, entry.Latitude)
	assert.Equal(t, lat, *entry.Latitude)
	assert.Equal(t, []string{"img/aurora.jpg"}, entry.Images)
	assert.Equal(t, SyncStatusPending, entry.SyncStatus)
	assert.Equal(t, later, entry.UpdatedAt)
}

func TestTripRow_RoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	trip := Trip{
		Record: Record{
			ID:         "t1",
			CreatedAt:  created,
			UpdatedAt:  created,
			SyncStatus: SyncStatusPending,
		},
		Title:     "Iceland",
		StartDate: "2026-08-01",
	}

	got := trip.Row().Trip(SyncStatusSynced)

	assert.Equal(t, trip.ID, got.ID)
	assert.Equal(t, trip.Title, got.Title)
	assert.Equal(t, trip.StartDate, got.StartDate)
	// the wire row never carries sync status; the caller decides it
	assert.Equal(t, SyncStatusSynced, got.SyncStatus)
}
