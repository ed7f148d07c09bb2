package service

import "errors"

var (
	// ErrSyncInProgress is returned (inside a SyncResult) when a sync is
	// requested while another one is still running.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNoConnection is returned (inside a SyncResult) when a sync is
	// requested while the device is offline.
	ErrNoConnection = errors.New("no internet connection available")

	ErrTitleRequired  = errors.New("title is required")
	ErrTripIDRequired = errors.New("trip id is required")
)
