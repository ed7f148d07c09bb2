package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/travel-journal-sync/internal/config"
	"github.com/MKhiriev/travel-journal-sync/internal/logger"
)

// Storages groups all local persistence backends into a single value
// that can be passed around the service layer.
type Storages struct {
	// Trips is the SQLite-backed repository for trips.
	Trips TripRepository

	// Entries is the SQLite-backed repository for journal entries.
	Entries EntryRepository

	// SyncLog is the append-only mutation audit trail.
	SyncLog SyncLogRepository

	// SyncState is the durable key-value store holding the sync
	// watermark, kept outside the relational database.
	SyncState SyncStateStore
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in
//     cfg.DB.DSN, creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs a [Storages] value wired to fresh repositories and the
//     file-backed sync-state store at cfg.StatePath.
//
// Returns an error if the database connection cannot be established or
// if migration fails.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Trips:     NewTripRepository(db, logger),
		Entries:   NewEntryRepository(db, logger),
		SyncLog:   NewSyncLogRepository(db, logger),
		SyncState: NewFileSyncStateStore(cfg.StatePath),
	}, nil
}
