package repository

import (
	"context"
	"fmt"

	"clinic-booking/internal/data/entity"
	"clinic-booking/pkg/database"

	"go.uber.org/zap"
)

// ActivityLogRepository records audit entries for booking actions.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
}

type activityLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActivityLogRepository(db database.PgxIface, log *zap.Logger) ActivityLogRepository {
	return &activityLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "activity_log")),
	}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, actor_id, action, entity_type, entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create activity log",
			zap.Error(err),
			zap.String("actor_id", entry.ActorID.String()),
			zap.String("action", entry.Action),
		)
		return fmt.Errorf("create activity log: %w", err)
	}

	return nil
}
