// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service contains the application logic of the journal client:
// record CRUD with offline-first bookkeeping, the bidirectional sync
// engine, and the long-lived session that schedules background syncs.
package service

import (
	"context"

	"github.com/MKhiriev/travel-journal-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TripService owns the trip lifecycle. Every write lands locally first
// with sync_status=pending; the sync engine reconciles with the backend
// later.
type TripService interface {
	// Create validates and stores a new trip, filling in the ID and
	// timestamps when the caller left them blank. Returns the stored
	// trip. Returns ErrTitleRequired when the title is empty.
	Create(ctx context.Context, trip models.Trip) (models.Trip, error)

	// Get returns the live trip or store.ErrNotFound. Soft-deleted trips
	// are invisible here.
	Get(ctx context.Context, id string) (models.Trip, error)

	// List returns all live trips, newest created first.
	List(ctx context.Context) ([]models.Trip, error)

	// Update applies a partial update; nil fields keep their value. The
	// record becomes pending again and its updated_at moves forward.
	Update(ctx context.Context, id string, update models.TripUpdate) error

	// Delete soft-deletes the trip. The row stays in place as a pending
	// tombstone until the deletion has been propagated to the backend.
	// Entries of the trip are not touched.
	Delete(ctx context.Context, id string) error
}

// EntryService owns the journal-entry lifecycle. Semantics mirror
// TripService.
type EntryService interface {
	// Create validates and stores a new entry. Returns ErrTripIDRequired
	// when the parent trip is missing; an empty title is allowed and
	// stays empty.
	Create(ctx context.Context, entry models.Entry) (models.Entry, error)

	Get(ctx context.Context, id string) (models.Entry, error)

	// List returns all live entries of one trip, newest created first.
	List(ctx context.Context, tripID string) ([]models.Entry, error)

	Update(ctx context.Context, id string, update models.EntryUpdate) error
	Delete(ctx context.Context, id string) error
}

// SyncService runs one full bidirectional sync pass.
type SyncService interface {
	// SyncAll uploads pending local changes, downloads remote changes
	// newer than the stored watermark, and commits a new watermark. It
	// never returns an error; failures come back inside the result.
	SyncAll(ctx context.Context) models.SyncResult
}
