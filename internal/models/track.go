package models

import (
	"time"

	"github.com/google/uuid"
)

// Track represents a catalog entry: either a playable song or a cover art
// asset grouped under the same album
type Track struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	Title       string    `json:"title" gorm:"type:text;not null;column:title" validate:"required,min=1,max=255"`
	Artist      string    `json:"artist" gorm:"type:text;not null;column:artist" validate:"required"`
	AlbumName   *string   `json:"album_name,omitempty" gorm:"type:text;column:album_name"`
	TrackNumber *int      `json:"track_number,omitempty" gorm:"type:integer;column:track_number"`
	AudioPath   string    `json:"audio_path,omitempty" gorm:"type:text;column:audio_path"`
	ImagePath   string    `json:"image_path,omitempty" gorm:"type:text;column:image_path"`
	IsCoverArt  bool      `json:"is_cover_art" gorm:"type:integer;not null;default:0;column:is_cover_art"`
	PlayCount   int64     `json:"play_count" gorm:"type:integer;not null;default:0;column:play_count"`
	CreatedAt   time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewTrack creates a new playable Track with generated UUID and timestamp
func NewTrack(title, artist, audioPath string) *Track {
	return &Track{
		ID:        uuid.New(),
		Title:     title,
		Artist:    artist,
		AudioPath: audioPath,
		CreatedAt: time.Now().UTC(),
	}
}

// NewCoverArt creates a new cover art Track with generated UUID and timestamp
func NewCoverArt(title, artist, imagePath string) *Track {
	return &Track{
		ID:         uuid.New(),
		Title:      title,
		Artist:     artist,
		ImagePath:  imagePath,
		IsCoverArt: true,
		CreatedAt:  time.Now().UTC(),
	}
}

// Playable reports whether the track can appear in playlists and
// recommendations
func (t *Track) Playable() bool {
	return !t.IsCoverArt
}
