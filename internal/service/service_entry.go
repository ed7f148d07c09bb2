package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/internal/store"
	"github.com/MKhiriev/travel-journal-sync/internal/utils"
	"github.com/MKhiriev/travel-journal-sync/models"
)

type entryService struct {
	entries store.EntryRepository
	syncLog store.SyncLogRepository
	ids     *utils.UUIDGenerator
	now     func() time.Time
	logger  *logger.Logger
}

func NewEntryService(storages *store.Storages, logger *logger.Logger) EntryService {
	return &entryService{
		entries: storages.Entries,
		syncLog: storages.SyncLog,
		ids:     utils.NewUUIDGenerator(),
		now:     time.Now,
		logger:  logger,
	}
}

func (s *entryService) Create(ctx context.Context, entry models.Entry) (models.Entry, error) {
	if strings.TrimSpace(entry.TripID) == "" {
		return models.Entry{}, ErrTripIDRequired
	}

	entry.Record = models.NewRecord(entry.Record, s.ids.Generate, s.now())

	if err := s.entries.Save(ctx, entry); err != nil {
		return models.Entry{}, fmt.Errorf("create entry: %w", err)
	}

	s.appendLog(ctx, entry.ID, models.SyncActionCreate)
	return entry, nil
}

func (s *entryService) Get(ctx context.Context, id string) (models.Entry, error) {
	return s.entries.FindByID(ctx, id)
}

func (s *entryService) List(ctx context.Context, tripID string) ([]models.Entry, error) {
	return s.entries.FindByTripID(ctx, tripID)
}

func (s *entryService) Update(ctx context.Context, id string, update models.EntryUpdate) error {
	if err := s.entries.Update(ctx, id, update, s.now()); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	s.appendLog(ctx, id, models.SyncActionUpdate)
	return nil
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	if err := s.entries.MarkDeleted(ctx, id, s.now()); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	s.appendLog(ctx, id, models.SyncActionDelete)
	return nil
}

func (s *entryService) appendLog(ctx context.Context, id string, action models.SyncAction) {
	entry := models.SyncLogEntry{
		EntityType: "entry",
		EntityID:   id,
		Action:     action,
		Status:     "local",
		Timestamp:  s.now(),
	}

	if err := s.syncLog.Append(ctx, entry); err != nil {
		s.logger.Warn().
			Err(err).
			Str("func", "entryService.appendLog").
			Str("entity_id", id).
			Msg("failed to append sync log entry")
	}
}
