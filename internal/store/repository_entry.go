package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/models"
)

var entryColumns = []string{
	"id", "trip_id", "title", "content", "location", "latitude", "longitude",
	"images", "created_at", "updated_at", "sync_status", "deleted",
}

type entryRepository struct {
	*DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	return &entryRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

func (r *entryRepository) Save(ctx context.Context, entry models.Entry) error {
	log := logger.FromContext(ctx)

	images, err := marshalImages(entry.Images)
	if err != nil {
		return err
	}

	query, args, err := r.builder.Insert("entries").
		Columns(entryColumns...).
		Values(
			entry.ID, entry.TripID, entry.Title, entry.Content, entry.Location,
			entry.Latitude, entry.Longitude, images,
			entry.CreatedAt, entry.UpdatedAt, entry.SyncStatus, entry.Deleted,
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build entry insert: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "entryRepository.Save").
			Str("entry_id", entry.ID).
			Str("trip_id", entry.TripID).
			Msg("failed to insert entry")
		return fmt.Errorf("failed to save entry %s: %w", entry.ID, err)
	}

	return nil
}

func (r *entryRepository) Update(ctx context.Context, id string, update models.EntryUpdate, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	b := r.builder.Update("entries")
	if update.Title != nil {
		b = b.Set("title", *update.Title)
	}
	if update.Content != nil {
		b = b.Set("content", *update.Content)
	}
	if update.Location != nil {
		b = b.Set("location", *update.Location)
	}
	if update.Latitude != nil {
		b = b.Set("latitude", *update.Latitude)
	}
	if update.Longitude != nil {
		b = b.Set("longitude", *update.Longitude)
	}
	if update.Images != nil {
		images, err := marshalImages(*update.Images)
		if err != nil {
			return err
		}
		b = b.Set("images", images)
	}

	query, args, err := b.
		Set("updated_at", updatedAt).
		Set("sync_status", models.SyncStatusPending).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build entry update: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.Update").
			Str("entry_id", id).
			Msg("failed to update entry")
		return fmt.Errorf("failed to update entry %s: %w", id, err)
	}

	return requireRowsAffected(result, "entry", id)
}

func (r *entryRepository) FindByID(ctx context.Context, id string) (models.Entry, error) {
	return r.findOne(ctx, sq.Eq{"id": id, "deleted": false})
}

func (r *entryRepository) FindByIDAny(ctx context.Context, id string) (models.Entry, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *entryRepository) findOne(ctx context.Context, where sq.Eq) (models.Entry, error) {
	query, args, err := r.builder.Select(entryColumns...).
		From("entries").
		Where(where).
		ToSql()
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to build entry select: %w", err)
	}

	entry, err := scanEntry(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, fmt.Errorf("entry: %w", ErrNotFound)
		}
		return models.Entry{}, fmt.Errorf("failed to query entry: %w", err)
	}

	return entry, nil
}

func (r *entryRepository) FindByTripID(ctx context.Context, tripID string) ([]models.Entry, error) {
	query, args, err := r.builder.Select(entryColumns...).
		From("entries").
		Where(sq.Eq{"trip_id": tripID, "deleted": false}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build entries select: %w", err)
	}

	return r.queryEntries(ctx, query, args...)
}

func (r *entryRepository) FindUnsynced(ctx context.Context) ([]models.Entry, error) {
	query, args, err := r.builder.Select(entryColumns...).
		From("entries").
		Where(sq.Eq{"sync_status": models.SyncStatusPending}).
		OrderBy("updated_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unsynced entries select: %w", err)
	}

	return r.queryEntries(ctx, query, args...)
}

func (r *entryRepository) SetSyncStatus(ctx context.Context, id string, status models.SyncStatus) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Update("entries").
		Set("sync_status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sync status update: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.SetSyncStatus").
			Str("entry_id", id).
			Str("status", string(status)).
			Msg("failed to set entry sync status")
		return fmt.Errorf("failed to set sync status for entry %s: %w", id, err)
	}

	return requireRowsAffected(result, "entry", id)
}

func (r *entryRepository) MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Update("entries").
		Set("deleted", true).
		Set("sync_status", models.SyncStatusPending).
		Set("updated_at", deletedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build entry soft delete: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.MarkDeleted").
			Str("entry_id", id).
			Msg("failed to soft delete entry")
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}

	return requireRowsAffected(result, "entry", id)
}

func (r *entryRepository) ApplyRemote(ctx context.Context, row models.EntryRow) error {
	log := logger.FromContext(ctx)

	// images stay local: the remote row never carries them
	query, args, err := r.builder.Update("entries").
		Set("trip_id", row.TripID).
		Set("title", row.Title).
		Set("content", row.Content).
		Set("location", row.Location).
		Set("latitude", row.Latitude).
		Set("longitude", row.Longitude).
		Set("updated_at", row.UpdatedAt).
		Set("sync_status", models.SyncStatusSynced).
		Set("deleted", row.Deleted).
		Where(sq.Eq{"id": row.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remote entry update: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "entryRepository.ApplyRemote").
			Str("entry_id", row.ID).
			Msg("failed to apply remote entry")
		return fmt.Errorf("failed to apply remote entry %s: %w", row.ID, err)
	}

	return nil
}

func (r *entryRepository) InsertRemote(ctx context.Context, row models.EntryRow) error {
	log := logger.FromContext(ctx)

	entry := row.Entry(models.SyncStatusSynced)

	query, args, err := r.builder.Insert("entries").
		Columns(entryColumns...).
		Values(
			entry.ID, entry.TripID, entry.Title, entry.Content, entry.Location,
			entry.Latitude, entry.Longitude, nil,
			entry.CreatedAt, entry.UpdatedAt, entry.SyncStatus, entry.Deleted,
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remote entry insert: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "entryRepository.InsertRemote").
			Str("entry_id", row.ID).
			Msg("failed to insert remote entry")
		return fmt.Errorf("failed to insert remote entry %s: %w", row.ID, err)
	}

	return nil
}

func (r *entryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.queryEntries").
			Msg("failed to query entries")
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var entry models.Entry
	var content, location, images sql.NullString
	var latitude, longitude sql.NullFloat64

	err := row.Scan(
		&entry.ID, &entry.TripID, &entry.Title, &content, &location,
		&latitude, &longitude, &images,
		&entry.CreatedAt, &entry.UpdatedAt, &entry.SyncStatus, &entry.Deleted,
	)
	if err != nil {
		return models.Entry{}, err
	}

	entry.Content = content.String
	entry.Location = location.String
	if latitude.Valid {
		entry.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		entry.Longitude = &longitude.Float64
	}
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &entry.Images); err != nil {
			return models.Entry{}, fmt.Errorf("failed to decode entry images: %w", err)
		}
	}

	return entry, nil
}

// marshalImages serialises the local image references into the TEXT
// column; nil stays NULL so untouched rows remain distinguishable from
// an explicitly emptied list.
func marshalImages(images []string) (any, error) {
	if images == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry images: %w", err)
	}

	return string(encoded), nil
}
