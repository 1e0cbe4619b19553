package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
)

// EntitlementRepository handles database operations for track entitlements
type EntitlementRepository struct {
	db *DB
}

// NewEntitlementRepository creates a new entitlement repository
func NewEntitlementRepository(db *DB) *EntitlementRepository {
	return &EntitlementRepository{db: db}
}

// Create inserts a new entitlement into the database. The unique index on
// (user_id, track_id) rejects a second grant for the same pair.
func (r *EntitlementRepository) Create(ctx context.Context, entitlement *models.Entitlement) error {
	result := r.db.WithContext(ctx).Create(entitlement)
	if result.Error != nil {
		return fmt.Errorf("failed to create entitlement: %w", MapGormError(result.Error))
	}
	return nil
}

// Get retrieves the entitlement for a (user, track) pair
func (r *EntitlementRepository) Get(ctx context.Context, userID, trackID uuid.UUID) (*models.Entitlement, error) {
	var entitlement models.Entitlement
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND track_id = ?", userID.String(), trackID.String()).
		First(&entitlement)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &entitlement, nil
}

// UpdateSource changes the origin of an existing entitlement, e.g. when a
// subscriber purchases a track they already hold a subscription grant for
func (r *EntitlementRepository) UpdateSource(ctx context.Context, id uuid.UUID, source string) error {
	result := r.db.WithContext(ctx).Model(&models.Entitlement{}).
		Where("id = ?", id.String()).
		Update("source", source)
	if result.Error != nil {
		return fmt.Errorf("failed to update entitlement source: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser retrieves all entitlements for a user ordered by creation date
// (newest first)
func (r *EntitlementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Entitlement, error) {
	var entitlements []*models.Entitlement
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Find(&entitlements)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", MapGormError(result.Error))
	}
	return entitlements, nil
}
