package entity

import (
	"github.com/google/uuid"
)

type ActivityLog struct {
	BaseSimple
	ActorID    uuid.UUID `db:"actor_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
}
