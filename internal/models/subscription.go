package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription represents a user's streaming subscription. At most one row
// exists per user; activating again updates the existing row.
type Subscription struct {
	ID        uuid.UUID  `json:"id" gorm:"type:text;primaryKey;column:id"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:text;not null;uniqueIndex;column:user_id" validate:"required"`
	Status    string     `json:"status" gorm:"type:text;not null;column:status" validate:"oneof=active canceled"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" gorm:"type:datetime;column:expires_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewSubscription creates a new active Subscription with generated UUID and
// timestamps
func NewSubscription(userID uuid.UUID, expiresAt *time.Time) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    SubscriptionStatusActive,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ActiveAt reports whether the subscription grants access at the given time
func (s *Subscription) ActiveAt(t time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}
	if s.ExpiresAt != nil && s.ExpiresAt.Before(t) {
		return false
	}
	return true
}
