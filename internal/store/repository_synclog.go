package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/models"
)

type syncLogRepository struct {
	*DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewSyncLogRepository returns the append-only audit trail repository.
// The engine never reads the log back; it exists for support and
// debugging sessions on a user's device.
func NewSyncLogRepository(db *DB, logger *logger.Logger) SyncLogRepository {
	return &syncLogRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

func (r *syncLogRepository) Append(ctx context.Context, entry models.SyncLogEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Insert("sync_log").
		Columns("entity_type", "entity_id", "action", "status", "timestamp").
		Values(entry.EntityType, entry.EntityID, entry.Action, entry.Status, entry.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sync log insert: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.Append").
			Str("entity_type", entry.EntityType).
			Str("entity_id", entry.EntityID).
			Msg("failed to append sync log entry")
		return fmt.Errorf("failed to append sync log entry: %w", err)
	}

	return nil
}
