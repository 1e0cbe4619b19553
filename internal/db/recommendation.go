package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
	"gorm.io/gorm"
)

// RecommendationRepository handles database operations for generated
// recommendation entries
type RecommendationRepository struct {
	db *DB
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db *DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Replace atomically swaps a user's recommendation set for the given
// entries. The prior set is deleted and the new one inserted within a single
// transaction, so readers never observe a mix of two generations.
func (r *RecommendationRepository) Replace(ctx context.Context, userID uuid.UUID, entries []*models.RecommendationEntry) error {
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ?", userID.String()).Delete(&models.RecommendationEntry{})
		if result.Error != nil {
			return fmt.Errorf("failed to clear recommendation entries: %w", MapGormError(result.Error))
		}

		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(entries).Error; err != nil {
			return fmt.Errorf("failed to insert recommendation entries: %w", MapGormError(err))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace recommendation entries: %w", err)
	}
	return nil
}

// GetByUser retrieves a user's recommendation entries ordered by display
// order
func (r *RecommendationRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.RecommendationEntry, error) {
	var entries []*models.RecommendationEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("display_order ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get recommendation entries: %w", MapGormError(result.Error))
	}
	return entries, nil
}

// LatestGeneratedAt returns the most recent generation timestamp for a
// user's recommendation set. Returns ErrNotFound when no entries exist.
func (r *RecommendationRepository) LatestGeneratedAt(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	var entry models.RecommendationEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("generated_at DESC").
		First(&entry)
	if result.Error != nil {
		return time.Time{}, MapGormError(result.Error)
	}
	return entry.GeneratedAt, nil
}

// StaleUserIDs returns the distinct user IDs whose newest recommendation
// entries are older than the cutoff. Used by the background refresher.
func (r *RecommendationRepository) StaleUserIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var idStrings []string
	result := r.db.WithContext(ctx).Model(&models.RecommendationEntry{}).
		Distinct("user_id").
		Where("generated_at < ?", cutoff).
		Pluck("user_id", &idStrings)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get stale recommendation users: %w", MapGormError(result.Error))
	}
	return parseUUIDs(idStrings)
}
