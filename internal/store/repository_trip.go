package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/models"
)

var tripColumns = []string{
	"id", "title", "description", "start_date", "end_date",
	"created_at", "updated_at", "sync_status", "deleted",
}

type tripRepository struct {
	*DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func NewTripRepository(db *DB, logger *logger.Logger) TripRepository {
	return &tripRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

func (r *tripRepository) Save(ctx context.Context, trip models.Trip) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Insert("trips").
		Columns(tripColumns...).
		Values(
			trip.ID, trip.Title, trip.Description, trip.StartDate, trip.EndDate,
			trip.CreatedAt, trip.UpdatedAt, trip.SyncStatus, trip.Deleted,
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip insert: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "tripRepository.Save").
			Str("trip_id", trip.ID).
			Msg("failed to insert trip")
		return fmt.Errorf("failed to save trip %s: %w", trip.ID, err)
	}

	return nil
}

func (r *tripRepository) Update(ctx context.Context, id string, update models.TripUpdate, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	b := r.builder.Update("trips")
	if update.Title != nil {
		b = b.Set("title", *update.Title)
	}
	if update.Description != nil {
		b = b.Set("description", *update.Description)
	}
	if update.StartDate != nil {
		b = b.Set("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		b = b.Set("end_date", *update.EndDate)
	}

	// every update is an outbound change
	query, args, err := b.
		Set("updated_at", updatedAt).
		Set("sync_status", models.SyncStatusPending).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip update: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "tripRepository.Update").
			Str("trip_id", id).
			Msg("failed to update trip")
		return fmt.Errorf("failed to update trip %s: %w", id, err)
	}

	return requireRowsAffected(result, "trip", id)
}

func (r *tripRepository) FindByID(ctx context.Context, id string) (models.Trip, error) {
	return r.findOne(ctx, sq.Eq{"id": id, "deleted": false})
}

func (r *tripRepository) FindByIDAny(ctx context.Context, id string) (models.Trip, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *tripRepository) findOne(ctx context.Context, where sq.Eq) (models.Trip, error) {
	query, args, err := r.builder.Select(tripColumns...).
		From("trips").
		Where(where).
		ToSql()
	if err != nil {
		return models.Trip{}, fmt.Errorf("failed to build trip select: %w", err)
	}

	trip, err := scanTrip(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, fmt.Errorf("trip: %w", ErrNotFound)
		}
		return models.Trip{}, fmt.Errorf("failed to query trip: %w", err)
	}

	return trip, nil
}

func (r *tripRepository) FindAll(ctx context.Context) ([]models.Trip, error) {
	query, args, err := r.builder.Select(tripColumns...).
		From("trips").
		Where(sq.Eq{"deleted": false}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build trips select: %w", err)
	}

	return r.queryTrips(ctx, query, args...)
}

func (r *tripRepository) FindUnsynced(ctx context.Context) ([]models.Trip, error) {
	// oldest pending change uploads first
	query, args, err := r.builder.Select(tripColumns...).
		From("trips").
		Where(sq.Eq{"sync_status": models.SyncStatusPending}).
		OrderBy("updated_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unsynced trips select: %w", err)
	}

	return r.queryTrips(ctx, query, args...)
}

func (r *tripRepository) SetSyncStatus(ctx context.Context, id string, status models.SyncStatus) error {
	log := logger.FromContext(ctx)

	// deliberately leaves updated_at untouched: acknowledging an upload
	// is not a user-visible change
	query, args, err := r.builder.Update("trips").
		Set("sync_status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sync status update: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "tripRepository.SetSyncStatus").
			Str("trip_id", id).
			Str("status", string(status)).
			Msg("failed to set trip sync status")
		return fmt.Errorf("failed to set sync status for trip %s: %w", id, err)
	}

	return requireRowsAffected(result, "trip", id)
}

func (r *tripRepository) MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Update("trips").
		Set("deleted", true).
		Set("sync_status", models.SyncStatusPending).
		Set("updated_at", deletedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip soft delete: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "tripRepository.MarkDeleted").
			Str("trip_id", id).
			Msg("failed to soft delete trip")
		return fmt.Errorf("failed to delete trip %s: %w", id, err)
	}

	return requireRowsAffected(result, "trip", id)
}

func (r *tripRepository) ApplyRemote(ctx context.Context, row models.TripRow) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Update("trips").
		Set("title", row.Title).
		Set("description", row.Description).
		Set("start_date", row.StartDate).
		Set("end_date", row.EndDate).
		Set("updated_at", row.UpdatedAt).
		Set("sync_status", models.SyncStatusSynced).
		Set("deleted", row.Deleted).
		Where(sq.Eq{"id": row.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remote trip update: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "tripRepository.ApplyRemote").
			Str("trip_id", row.ID).
			Msg("failed to apply remote trip")
		return fmt.Errorf("failed to apply remote trip %s: %w", row.ID, err)
	}

	return nil
}

func (r *tripRepository) InsertRemote(ctx context.Context, row models.TripRow) error {
	log := logger.FromContext(ctx)

	trip := row.Trip(models.SyncStatusSynced)

	query, args, err := r.builder.Insert("trips").
		Columns(tripColumns...).
		Values(
			trip.ID, trip.Title, trip.Description, trip.StartDate, trip.EndDate,
			trip.CreatedAt, trip.UpdatedAt, trip.SyncStatus, trip.Deleted,
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remote trip insert: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "tripRepository.InsertRemote").
			Str("trip_id", row.ID).
			Msg("failed to insert remote trip")
		return fmt.Errorf("failed to insert remote trip %s: %w", row.ID, err)
	}

	return nil
}

func (r *tripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]models.Trip, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "tripRepository.queryTrips").
			Msg("failed to query trips")
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		trips = append(trips, trip)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trip rows: %w", err)
	}

	return trips, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var trip models.Trip
	var description, startDate, endDate sql.NullString

	err := row.Scan(
		&trip.ID, &trip.Title, &description, &startDate, &endDate,
		&trip.CreatedAt, &trip.UpdatedAt, &trip.SyncStatus, &trip.Deleted,
	)
	if err != nil {
		return models.Trip{}, err
	}

	trip.Description = description.String
	trip.StartDate = startDate.String
	trip.EndDate = endDate.String

	return trip, nil
}

func requireRowsAffected(result sql.Result, entity, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (%s %s): %w", entity, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
