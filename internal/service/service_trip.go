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

type tripService struct {
	trips   store.TripRepository
	syncLog store.SyncLogRepository
	ids     *utils.UUIDGenerator
	now     func() time.Time
	logger  *logger.Logger
}

func NewTripService(storages *store.Storages, logger *logger.Logger) TripService {
	return &tripService{
		trips:   storages.Trips,
		syncLog: storages.SyncLog,
		ids:     utils.NewUUIDGenerator(),
		now:     time.Now,
		logger:  logger,
	}
}

func (s *tripService) Create(ctx context.Context, trip models.Trip) (models.Trip, error) {
	if strings.TrimSpace(trip.Title) == "" {
		return models.Trip{}, ErrTitleRequired
	}

	trip.Record = models.NewRecord(trip.Record, s.ids.Generate, s.now())

	if err := s.trips.Save(ctx, trip); err != nil {
		return models.Trip{}, fmt.Errorf("create trip: %w", err)
	}

	s.appendLog(ctx, "trip", trip.ID, models.SyncActionCreate)
	return trip, nil
}

func (s *tripService) Get(ctx context.Context, id string) (models.Trip, error) {
	return s.trips.FindByID(ctx, id)
}

func (s *tripService) List(ctx context.Context) ([]models.Trip, error) {
	return s.trips.FindAll(ctx)
}

func (s *tripService) Update(ctx context.Context, id string, update models.TripUpdate) error {
	if err := s.trips.Update(ctx, id, update, s.now()); err != nil {
		return fmt.Errorf("update trip: %w", err)
	}

	s.appendLog(ctx, "trip", id, models.SyncActionUpdate)
	return nil
}

func (s *tripService) Delete(ctx context.Context, id string) error {
	if err := s.trips.MarkDeleted(ctx, id, s.now()); err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}

	s.appendLog(ctx, "trip", id, models.SyncActionDelete)
	return nil
}

// appendLog records the mutation in the local audit trail. A failed
// append never fails the write that triggered it.
func (s *tripService) appendLog(ctx context.Context, entityType, id string, action models.SyncAction) {
	entry := models.SyncLogEntry{
		EntityType: entityType,
		EntityID:   id,
		Action:     action,
		Status:     "local",
		Timestamp:  s.now(),
	}

	if err := s.syncLog.Append(ctx, entry); err != nil {
		s.logger.Warn().
			Err(err).
			Str("func", "tripService.appendLog").
			Str("entity_id", id).
			Msg("failed to append sync log entry")
	}
}
