package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist represents a user playlist. System-generated playlists (e.g. the
// Liked Songs playlist) are maintained by internal logic and cannot be
// renamed or deleted through the user-facing operations.
type Playlist struct {
	ID                uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	UserID            uuid.UUID `json:"user_id" gorm:"type:text;not null;column:user_id" validate:"required"`
	Name              string    `json:"name" gorm:"type:text;not null;column:name" validate:"required,min=1,max=255"`
	IsSystemGenerated bool      `json:"is_system_generated" gorm:"type:integer;not null;default:0;column:is_system_generated"`
	CreatedAt         time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`

	// Populated by joins, not stored in database
	Tracks []*Track `json:"tracks,omitempty" gorm:"-"`
}

// NewPlaylist creates a new user-editable Playlist with generated UUID and
// timestamps
func NewPlaylist(userID uuid.UUID, name string) *Playlist {
	now := time.Now().UTC()
	return &Playlist{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSystemPlaylist creates a new system-generated Playlist
func NewSystemPlaylist(userID uuid.UUID, name string) *Playlist {
	playlist := NewPlaylist(userID, name)
	playlist.IsSystemGenerated = true
	return playlist
}
