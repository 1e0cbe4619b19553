package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
)

// SubscriptionRepository handles database operations for subscriptions
type SubscriptionRepository struct {
	db *DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a new subscription into the database. The unique index on
// user_id rejects a second subscription row for the same user.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	result := r.db.WithContext(ctx).Create(sub)
	if result.Error != nil {
		return fmt.Errorf("failed to create subscription: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByUser retrieves a user's subscription row
func (r *SubscriptionRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	result := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).First(&sub)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &sub, nil
}

// UpdateStatus updates a subscription's status and expiry
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, expiresAt *time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("id = ?", id.String()).
		Updates(map[string]interface{}{
			"status":     status,
			"expires_at": expiresAt,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
