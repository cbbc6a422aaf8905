package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
)

// Session is issued by the identity service; this engine only validates it.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Role      UserRole   `db:"role"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
