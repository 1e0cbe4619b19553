package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaylistTrack represents a playlist membership entry
type PlaylistTrack struct {
	ID         uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	PlaylistID uuid.UUID `json:"playlist_id" gorm:"type:text;not null;column:playlist_id" validate:"required"`
	TrackID    uuid.UUID `json:"track_id" gorm:"type:text;not null;column:track_id" validate:"required"`
	CreatedAt  time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`

	// Populated by joins, not stored in database
	Track *Track `json:"track,omitempty" gorm:"-"`
}

// NewPlaylistTrack creates a new PlaylistTrack with generated UUID and
// timestamp
func NewPlaylistTrack(playlistID, trackID uuid.UUID) *PlaylistTrack {
	return &PlaylistTrack{
		ID:         uuid.New(),
		PlaylistID: playlistID,
		TrackID:    trackID,
		CreatedAt:  time.Now().UTC(),
	}
}
