// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/travel-journal-sync/internal/adapter"
	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/internal/store"
	"github.com/MKhiriev/travel-journal-sync/models"
)

// syncManager implements [SyncService]: one full pass is
// authenticate, probe, upload (trips before entries, so the backend
// sees a parent before its children), download, commit watermark.
//
// The watermark is committed after both phases even when individual
// rows failed along the way. A failed upload marks the row failed and
// is not retried automatically; the row re-enters the queue when a
// later edit marks it pending again.
type syncManager struct {
	remote  adapter.RemoteStore
	trips   syncable
	entries syncable
	state   store.SyncStateStore
	now     func() time.Time
	logger  *logger.Logger
}

// NewSyncManager wires the sync engine over the local storages and the
// remote adapter.
func NewSyncManager(storages *store.Storages, remote adapter.RemoteStore, logger *logger.Logger) SyncService {
	return &syncManager{
		remote:  remote,
		trips:   tripSyncable{repo: storages.Trips},
		entries: entrySyncable{repo: storages.Entries},
		state:   storages.SyncState,
		now:     time.Now,
		logger:  logger,
	}
}

func (m *syncManager) SyncAll(ctx context.Context) models.SyncResult {
	log := m.logger.With().Str("func", "syncManager.SyncAll").Logger()

	if err := m.remote.EnsureSession(ctx); err != nil {
		log.Err(err).Msg("authentication failed")
		return syncFailure(fmt.Errorf("authentication failed: %w", err))
	}

	if err := m.remote.Ping(ctx); err != nil {
		if adapter.IsConnectivityError(err) {
			log.Warn().Err(err).Msg("backend unreachable")
			return syncFailure(ErrNoConnection)
		}
		log.Err(err).Msg("connectivity check failed")
		return syncFailure(fmt.Errorf("connectivity check failed: %w", err))
	}

	watermark := m.watermark()

	uploadedTrips, err := m.upload(ctx, m.trips)
	if err != nil {
		log.Err(err).Msg("trip upload phase failed")
		return syncFailure(fmt.Errorf("failed to upload trips: %w", err))
	}

	uploadedEntries, err := m.upload(ctx, m.entries)
	if err != nil {
		log.Err(err).Msg("entry upload phase failed")
		return syncFailure(fmt.Errorf("failed to upload entries: %w", err))
	}

	downloadedTrips, err := m.download(ctx, m.trips, watermark)
	if err != nil {
		log.Err(err).Msg("trip download phase failed")
		return syncFailure(fmt.Errorf("failed to download trips: %w", err))
	}

	downloadedEntries, err := m.download(ctx, m.entries, watermark)
	if err != nil {
		log.Err(err).Msg("entry download phase failed")
		return syncFailure(fmt.Errorf("failed to download entries: %w", err))
	}

	if err := m.state.Set(store.LastSyncKey, m.now().UTC().Format(time.RFC3339Nano)); err != nil {
		log.Err(err).Msg("failed to store watermark")
		return syncFailure(fmt.Errorf("failed to store sync state: %w", err))
	}

	log.Info().
		Int("uploaded_trips", uploadedTrips).
		Int("uploaded_entries", uploadedEntries).
		Int("downloaded_trips", downloadedTrips).
		Int("downloaded_entries", downloadedEntries).
		Msg("sync pass finished")

	return models.SyncResult{
		Success:           true,
		UploadedTrips:     uploadedTrips,
		UploadedEntries:   uploadedEntries,
		DownloadedTrips:   downloadedTrips,
		DownloadedEntries: downloadedEntries,
	}
}

// upload pushes every pending record of one entity type. A record that
// fails is marked failed and skipped; the pass keeps going.
func (m *syncManager) upload(ctx context.Context, s syncable) (int, error) {
	items, err := s.pending(ctx)
	if err != nil {
		return 0, err
	}

	uploaded := 0
	for _, item := range items {
		if err := m.push(ctx, s, item); err != nil {
			m.logger.Warn().
				Err(err).
				Str("func", "syncManager.upload").
				Str("table", s.table()).
				Str("id", item.id).
				Msg("upload failed, marking record failed")

			if statusErr := s.setSyncStatus(ctx, item.id, models.SyncStatusFailed); statusErr != nil {
				m.logger.Err(statusErr).
					Str("func", "syncManager.upload").
					Str("id", item.id).
					Msg("failed to mark record failed")
			}
			continue
		}

		if err := s.setSyncStatus(ctx, item.id, models.SyncStatusSynced); err != nil {
			return uploaded, fmt.Errorf("failed to mark %s %s synced: %w", s.table(), item.id, err)
		}
		uploaded++
	}

	return uploaded, nil
}

// push sends one record. Tombstones travel as a field update so the
// rest of the remote row stays intact; everything else is a full-row
// upsert keyed by id.
func (m *syncManager) push(ctx context.Context, s syncable, item uploadItem) error {
	if item.deleted {
		return m.remote.UpdateFields(ctx, s.table(), item.id, map[string]any{
			"deleted":    true,
			"updated_at": item.updatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	return m.remote.Upsert(ctx, s.table(), item.row)
}

// download applies every remote row of one entity type changed after
// the watermark. A row whose local counterpart is pending is skipped:
// the local change wins and travels up on the next pass.
func (m *syncManager) download(ctx context.Context, s syncable, watermark time.Time) (int, error) {
	items, err := s.fetchRemote(ctx, m.remote, watermark)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, item := range items {
		ok, err := m.applyOne(ctx, s, item)
		if err != nil {
			m.logger.Warn().
				Err(err).
				Str("func", "syncManager.download").
				Str("table", s.table()).
				Str("id", item.id).
				Msg("failed to apply remote row, skipping")
			continue
		}
		if ok {
			applied++
		}
	}

	return applied, nil
}

func (m *syncManager) applyOne(ctx context.Context, s syncable, item remoteItem) (bool, error) {
	exists, pendingLocal, err := s.lookupLocal(ctx, item.id)
	if err != nil {
		return false, err
	}

	switch {
	case exists && pendingLocal:
		return false, nil
	case exists:
		return true, s.applyRemote(ctx, item)
	default:
		return true, s.insertRemote(ctx, item)
	}
}

// watermark reads the last committed sync timestamp. A missing or
// unreadable value falls back to the epoch, which re-downloads
// everything; upserts keep that harmless.
func (m *syncManager) watermark() time.Time {
	value, err := m.state.Get(store.LastSyncKey)
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "syncManager.watermark").Msg("failed to read watermark")
		return time.Time{}
	}
	if value == "" {
		return time.Time{}
	}

	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "syncManager.watermark").Msg("unparseable watermark")
		return time.Time{}
	}

	return ts
}

func syncFailure(err error) models.SyncResult {
	return models.SyncResult{Success: false, Error: err.Error()}
}
