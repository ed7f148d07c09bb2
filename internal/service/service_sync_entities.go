package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/travel-journal-sync/internal/adapter"
	"github.com/MKhiriev/travel-journal-sync/internal/store"
	"github.com/MKhiriev/travel-journal-sync/models"
)

// syncable describes one entity type to the upload and download loops,
// which are written once and run for trips and entries alike.
type syncable interface {
	table() string

	// pending lists local records waiting for upload, oldest change
	// first.
	pending(ctx context.Context) ([]uploadItem, error)

	setSyncStatus(ctx context.Context, id string, status models.SyncStatus) error

	// fetchRemote pulls rows changed after updatedAfter.
	fetchRemote(ctx context.Context, remote adapter.RemoteStore, updatedAfter time.Time) ([]remoteItem, error)

	// lookupLocal reports whether a local row exists (tombstones count)
	// and whether it carries unsynced changes.
	lookupLocal(ctx context.Context, id string) (exists, pendingLocal bool, err error)

	applyRemote(ctx context.Context, item remoteItem) error
	insertRemote(ctx context.Context, item remoteItem) error
}

// uploadItem is one pending local record ready to travel.
type uploadItem struct {
	id        string
	deleted   bool
	updatedAt time.Time
	row       any
}

// remoteItem is one downloaded row; row holds the typed wire struct of
// the entity.
type remoteItem struct {
	id  string
	row any
}

// ── trips ───────────────────────────────────────────────────────────────────

type tripSyncable struct {
	repo store.TripRepository
}

func (t tripSyncable) table() string { return "trips" }

func (t tripSyncable) pending(ctx context.Context) ([]uploadItem, error) {
	trips, err := t.repo.FindUnsynced(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]uploadItem, 0, len(trips))
	for _, trip := range trips {
		items = append(items, uploadItem{
			id:        trip.ID,
			deleted:   trip.Deleted,
			updatedAt: trip.UpdatedAt,
			row:       trip.Row(),
		})
	}

	return items, nil
}

func (t tripSyncable) setSyncStatus(ctx context.Context, id string, status models.SyncStatus) error {
	return t.repo.SetSyncStatus(ctx, id, status)
}

func (t tripSyncable) fetchRemote(ctx context.Context, remote adapter.RemoteStore, updatedAfter time.Time) ([]remoteItem, error) {
	var rows []models.TripRow
	if err := remote.Select(ctx, t.table(), updatedAfter, &rows); err != nil {
		return nil, err
	}

	items := make([]remoteItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, remoteItem{id: row.ID, row: row})
	}

	return items, nil
}

func (t tripSyncable) lookupLocal(ctx context.Context, id string) (bool, bool, error) {
	trip, err := t.repo.FindByIDAny(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	return true, trip.SyncStatus == models.SyncStatusPending, nil
}

func (t tripSyncable) applyRemote(ctx context.Context, item remoteItem) error {
	row, ok := item.row.(models.TripRow)
	if !ok {
		return fmt.Errorf("unexpected trip row type %T", item.row)
	}
	return t.repo.ApplyRemote(ctx, row)
}

func (t tripSyncable) insertRemote(ctx context.Context, item remoteItem) error {
	row, ok := item.row.(models.TripRow)
	if !ok {
		return fmt.Errorf("unexpected trip row type %T", item.row)
	}
	return t.repo.InsertRemote(ctx, row)
}

// ── entries ─────────────────────────────────────────────────────────────────

type entrySyncable struct {
	repo store.EntryRepository
}

func (e entrySyncable) table() string { return "entries" }

func (e entrySyncable) pending(ctx context.Context) ([]uploadItem, error) {
	entries, err := e.repo.FindUnsynced(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]uploadItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, uploadItem{
			id:        entry.ID,
			deleted:   entry.Deleted,
			updatedAt: entry.UpdatedAt,
			row:       entry.Row(),
		})
	}

	return items, nil
}

func (e entrySyncable) setSyncStatus(ctx context.Context, id string, status models.SyncStatus) error {
	return e.repo.SetSyncStatus(ctx, id, status)
}

func (e entrySyncable) fetchRemote(ctx context.Context, remote adapter.RemoteStore, updatedAfter time.Time) ([]remoteItem, error) {
	var rows []models.EntryRow
	if err := remote.Select(ctx, e.table(), updatedAfter, &rows); err != nil {
		return nil, err
	}

	items := make([]remoteItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, remoteItem{id: row.ID, row: row})
	}

	return items, nil
}

func (e entrySyncable) lookupLocal(ctx context.Context, id string) (bool, bool, error) {
	entry, err := e.repo.FindByIDAny(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	return true, entry.SyncStatus == models.SyncStatusPending, nil
}

func (e entrySyncable) applyRemote(ctx context.Context, item remoteItem) error {
	row, ok := item.row.(models.EntryRow)
	if !ok {
		return fmt.Errorf("unexpected entry row type %T", item.row)
	}
	return e.repo.ApplyRemote(ctx, row)
}

func (e entrySyncable) insertRemote(ctx context.Context, item remoteItem) error {
	row, ok := item.row.(models.EntryRow)
	if !ok {
		return fmt.Errorf("unexpected entry row type %T", item.row)
	}
	return e.repo.InsertRemote(ctx, row)
}
