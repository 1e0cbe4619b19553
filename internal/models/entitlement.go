package models

import (
	"time"

	"github.com/google/uuid"
)

// Entitlement represents proof that a user may access a track's playable
// content. The source distinguishes a real purchase from a grant
// materialized on demand for an active subscriber.
type Entitlement struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:text;not null;column:user_id" validate:"required"`
	TrackID   uuid.UUID `json:"track_id" gorm:"type:text;not null;column:track_id" validate:"required"`
	Source    string    `json:"source" gorm:"type:text;not null;column:source" validate:"oneof=purchase subscription"`
	CreatedAt time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewEntitlement creates a new Entitlement with generated UUID and timestamp
func NewEntitlement(userID, trackID uuid.UUID, source string) *Entitlement {
	return &Entitlement{
		ID:        uuid.New(),
		UserID:    userID,
		TrackID:   trackID,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}

// Purchased reports whether the entitlement originates from a purchase
func (e *Entitlement) Purchased() bool {
	return e.Source == EntitlementSourcePurchase
}
