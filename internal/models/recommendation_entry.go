package models

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationEntry represents one ranked entry in a user's generated
// recommendation list. The whole set for a user is replaced on each
// regeneration; rows from different generations never mix.
type RecommendationEntry struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:text;not null;column:user_id" validate:"required"`
	TrackID      uuid.UUID `json:"track_id" gorm:"type:text;not null;column:track_id" validate:"required"`
	DisplayOrder int       `json:"display_order" gorm:"type:integer;not null;column:display_order" validate:"gte=1"`
	Score        float64   `json:"score" gorm:"type:real;not null;column:score"`
	GeneratedAt  time.Time `json:"generated_at" gorm:"type:datetime;not null;column:generated_at"`

	// Populated by joins, not stored in database
	Track *Track `json:"track,omitempty" gorm:"-"`
}

// NewRecommendationEntry creates a new RecommendationEntry with generated UUID
func NewRecommendationEntry(userID, trackID uuid.UUID, displayOrder int, score float64, generatedAt time.Time) *RecommendationEntry {
	return &RecommendationEntry{
		ID:           uuid.New(),
		UserID:       userID,
		TrackID:      trackID,
		DisplayOrder: displayOrder,
		Score:        score,
		GeneratedAt:  generatedAt,
	}
}
