// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models contains the domain records synchronised between the
// local SQLite database and the remote backend: trips, journal entries,
// the sync audit log, and the structured result of a sync pass.
package models

import "time"

// SyncStatus describes where a record stands in the upload lifecycle.
type SyncStatus string

const (
	// SyncStatusSynced marks a record whose latest local state has been
	// accepted by the remote backend.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusPending marks a record with local changes that have not
	// been uploaded yet. Only pending records are picked up by the next
	// sync pass.
	SyncStatusPending SyncStatus = "pending"

	// SyncStatusFailed marks a record whose last upload attempt errored.
	// Failed records are not retried automatically; something has to set
	// them back to pending first.
	SyncStatusFailed SyncStatus = "failed"
)

// Record holds the identity and sync bookkeeping fields shared by every
// syncable entity. Concrete entities embed it.
//
// Invariants: UpdatedAt never decreases and is refreshed on every
// mutation; a record is never physically removed from local storage —
// deletion sets Deleted plus SyncStatusPending so the tombstone itself
// becomes an outbound change.
type Record struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	SyncStatus SyncStatus `json:"sync_status"`
	Deleted    bool       `json:"deleted"`
}

// NewRecord fills the identity fields that a freshly constructed record
// may be missing. Caller-provided values are kept; blanks get defaults:
// a generated ID, CreatedAt/UpdatedAt set to now, and SyncStatusPending.
func NewRecord(r Record, generateID func() string, now time.Time) Record {
	if r.ID == "" {
		r.ID = generateID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	if r.SyncStatus == "" {
		r.SyncStatus = SyncStatusPending
	}
	return r
}

// Touch refreshes UpdatedAt. Every mutating operation calls it.
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now
}

// MarkPending flags the record as carrying local changes and refreshes
// UpdatedAt.
func (r *Record) MarkPending(now time.Time) {
	r.SyncStatus = SyncStatusPending
	r.Touch(now)
}

// MarkDeleted soft-deletes the record. The deletion is itself a pending
// outbound change, so the status is forced back to pending.
func (r *Record) MarkDeleted(now time.Time) {
	r.Deleted = true
	r.MarkPending(now)
}
