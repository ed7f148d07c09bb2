package store

import (
	"context"
	"time"

	"github.com/MKhiriev/travel-journal-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TripRepository is the local persistence contract for trips.
//
// The finder split matters for sync: FindByID hides soft-deleted rows
// from the application, while FindByIDAny sees tombstones too — the
// download phase must not resurrect a record it cannot see.
type TripRepository interface {
	// Save inserts a full trip row.
	Save(ctx context.Context, trip models.Trip) error

	// Update writes only the fields present in update, forces
	// sync_status back to pending, and sets updated_at to updatedAt.
	Update(ctx context.Context, id string, update models.TripUpdate, updatedAt time.Time) error

	// FindByID returns the live (non-deleted) trip or ErrNotFound.
	FindByID(ctx context.Context, id string) (models.Trip, error)

	// FindByIDAny returns the trip regardless of its deleted flag, or
	// ErrNotFound when no row exists at all.
	FindByIDAny(ctx context.Context, id string) (models.Trip, error)

	// FindAll returns all live trips, newest created first.
	FindAll(ctx context.Context) ([]models.Trip, error)

	// FindUnsynced returns trips with sync_status=pending, oldest
	// updated first, so the longest-waiting changes upload first.
	FindUnsynced(ctx context.Context) ([]models.Trip, error)

	// SetSyncStatus writes sync_status directly without touching
	// updated_at. Used by the sync engine after upload attempts.
	SetSyncStatus(ctx context.Context, id string, status models.SyncStatus) error

	// MarkDeleted soft-deletes the row: deleted=1, sync_status=pending,
	// updated_at=deletedAt.
	MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error

	// ApplyRemote overwrites every field of an existing row from the
	// downloaded snapshot and forces sync_status=synced.
	ApplyRemote(ctx context.Context, row models.TripRow) error

	// InsertRemote inserts a downloaded row with sync_status=synced.
	InsertRemote(ctx context.Context, row models.TripRow) error
}

// EntryRepository is the local persistence contract for journal
// entries. Semantics mirror TripRepository.
type EntryRepository interface {
	Save(ctx context.Context, entry models.Entry) error
	Update(ctx context.Context, id string, update models.EntryUpdate, updatedAt time.Time) error
	FindByID(ctx context.Context, id string) (models.Entry, error)
	FindByIDAny(ctx context.Context, id string) (models.Entry, error)

	// FindByTripID returns all live entries of a trip, newest created
	// first.
	FindByTripID(ctx context.Context, tripID string) ([]models.Entry, error)

	FindUnsynced(ctx context.Context) ([]models.Entry, error)
	SetSyncStatus(ctx context.Context, id string, status models.SyncStatus) error
	MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error
	ApplyRemote(ctx context.Context, row models.EntryRow) error
	InsertRemote(ctx context.Context, row models.EntryRow) error
}

// SyncLogRepository appends rows to the local sync audit trail.
type SyncLogRepository interface {
	Append(ctx context.Context, entry models.SyncLogEntry) error
}

// SyncStateStore is durable key-value storage for sync bookkeeping that
// lives outside the relational store, most importantly the last-sync
// watermark.
type SyncStateStore interface {
	// Get returns the stored value, or "" when the key has never been
	// set.
	Get(key string) (string, error)

	// Set durably stores value under key.
	Set(key, value string) error
}
