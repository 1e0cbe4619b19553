package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
)

// PreferenceRepository handles database operations for like/dislike signals
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Create inserts a new preference into the database. The unique index on
// (user_id, track_id) rejects a second row for the same pair.
func (r *PreferenceRepository) Create(ctx context.Context, pref *models.Preference) error {
	result := r.db.WithContext(ctx).Create(pref)
	if result.Error != nil {
		return fmt.Errorf("failed to create preference: %w", MapGormError(result.Error))
	}
	return nil
}

// Get retrieves the preference for a (user, track) pair
func (r *PreferenceRepository) Get(ctx context.Context, userID, trackID uuid.UUID) (*models.Preference, error) {
	var pref models.Preference
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND track_id = ?", userID.String(), trackID.String()).
		First(&pref)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &pref, nil
}

// UpdateLiked flips an existing preference to the given direction
func (r *PreferenceRepository) UpdateLiked(ctx context.Context, id uuid.UUID, liked bool) error {
	result := r.db.WithContext(ctx).Model(&models.Preference{}).
		Where("id = ?", id.String()).
		Updates(map[string]interface{}{
			"liked":      liked,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update preference: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a preference by its UUID
func (r *PreferenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.Preference{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete preference: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Counts returns the aggregate like and dislike counts for a track
func (r *PreferenceRepository) Counts(ctx context.Context, trackID uuid.UUID) (likes int64, dislikes int64, err error) {
	result := r.db.WithContext(ctx).Model(&models.Preference{}).
		Where("track_id = ? AND liked = ?", trackID.String(), true).
		Count(&likes)
	if result.Error != nil {
		return 0, 0, fmt.Errorf("failed to count likes: %w", MapGormError(result.Error))
	}

	result = r.db.WithContext(ctx).Model(&models.Preference{}).
		Where("track_id = ? AND liked = ?", trackID.String(), false).
		Count(&dislikes)
	if result.Error != nil {
		return 0, 0, fmt.Errorf("failed to count dislikes: %w", MapGormError(result.Error))
	}

	return likes, dislikes, nil
}

// LikedTrackIDs retrieves the IDs of all tracks the user has liked
func (r *PreferenceRepository) LikedTrackIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.trackIDsByDirection(ctx, userID, true)
}

// DislikedTrackIDs retrieves the IDs of all tracks the user has disliked
func (r *PreferenceRepository) DislikedTrackIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.trackIDsByDirection(ctx, userID, false)
}

func (r *PreferenceRepository) trackIDsByDirection(ctx context.Context, userID uuid.UUID, liked bool) ([]uuid.UUID, error) {
	var idStrings []string
	result := r.db.WithContext(ctx).Model(&models.Preference{}).
		Where("user_id = ? AND liked = ?", userID.String(), liked).
		Pluck("track_id", &idStrings)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get preference track ids: %w", MapGormError(result.Error))
	}
	return parseUUIDs(idStrings)
}

// UsersWhoLike retrieves the distinct IDs of users (other than excludeUserID)
// with an active like on any of the given tracks
func (r *PreferenceRepository) UsersWhoLike(ctx context.Context, trackIDs []uuid.UUID, excludeUserID uuid.UUID) ([]uuid.UUID, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}
	idStrings := make([]string, 0, len(trackIDs))
	for _, id := range trackIDs {
		idStrings = append(idStrings, id.String())
	}

	var userIDStrings []string
	result := r.db.WithContext(ctx).Model(&models.Preference{}).
		Distinct("user_id").
		Where("liked = ? AND track_id IN ? AND user_id != ?", true, idStrings, excludeUserID.String()).
		Pluck("user_id", &userIDStrings)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get users who like: %w", MapGormError(result.Error))
	}
	return parseUUIDs(userIDStrings)
}

// LikesByUsers retrieves all active like preferences held by the given users
func (r *PreferenceRepository) LikesByUsers(ctx context.Context, userIDs []uuid.UUID) ([]*models.Preference, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	idStrings := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		idStrings = append(idStrings, id.String())
	}

	var prefs []*models.Preference
	result := r.db.WithContext(ctx).
		Where("liked = ? AND user_id IN ?", true, idStrings).
		Find(&prefs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get likes by users: %w", MapGormError(result.Error))
	}
	return prefs, nil
}

// parseUUIDs converts stored text IDs back to UUIDs
func parseUUIDs(idStrings []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(idStrings))
	for _, s := range idStrings {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored uuid %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
