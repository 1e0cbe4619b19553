package models

import (
	"time"

	"github.com/google/uuid"
)

// Preference represents a user's like or dislike signal for a track.
// At most one row exists per (user, track); a neutral preference is
// represented by the absence of a row, not stored.
type Preference struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:text;not null;column:user_id" validate:"required"`
	TrackID   uuid.UUID `json:"track_id" gorm:"type:text;not null;column:track_id" validate:"required"`
	Liked     bool      `json:"liked" gorm:"type:integer;not null;column:liked"`
	CreatedAt time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewPreference creates a new Preference with generated UUID and timestamps
func NewPreference(userID, trackID uuid.UUID, liked bool) *Preference {
	now := time.Now().UTC()
	return &Preference{
		ID:        uuid.New(),
		UserID:    userID,
		TrackID:   trackID,
		Liked:     liked,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
