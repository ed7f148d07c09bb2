// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncAction classifies a mutation recorded in the sync audit log.
type SyncAction string

const (
	SyncActionCreate SyncAction = "create"
	SyncActionUpdate SyncAction = "update"
	SyncActionDelete SyncAction = "delete"
)

// SyncLogEntry is one row of the append-only, local-only audit trail.
// The engine only ever writes it; nothing reads it back.
type SyncLogEntry struct {
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Action     SyncAction `json:"action"`
	Status     string     `json:"status"`
	Timestamp  time.Time  `json:"timestamp"`
}

// SyncResult is the structured outcome of one full sync pass. Phase
// failures (auth, connectivity, storage) set Success=false and Error;
// they are returned, never raised.
type SyncResult struct {
	Success           bool   `json:"success"`
	UploadedTrips     int    `json:"uploaded_trips"`
	UploadedEntries   int    `json:"uploaded_entries"`
	DownloadedTrips   int    `json:"downloaded_trips"`
	DownloadedEntries int    `json:"downloaded_entries"`
	Error             string `json:"error,omitempty"`
}
