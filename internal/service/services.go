package service

import (
	"time"

	"github.com/MKhiriev/travel-journal-sync/internal/adapter"
	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/internal/store"
)

// Services bundles the application services for wiring at startup.
type Services struct {
	Trips   TripService
	Entries EntryService
	Sync    SyncService
	Session *SyncSession
}

// NewServices wires the record services, the sync engine, and the sync
// session over the given storages, remote adapter, and connectivity
// monitor.
func NewServices(storages *store.Storages, remote adapter.RemoteStore, monitor connectivity, syncInterval time.Duration, logger *logger.Logger) *Services {
	syncService := NewSyncManager(storages, remote, logger)

	return &Services{
		Trips:   NewTripService(storages, logger),
		Entries: NewEntryService(storages, logger),
		Sync:    syncService,
		Session: NewSyncSession(syncService, monitor, syncInterval, logger),
	}
}
