// Package db provides database connection management and repository interfaces.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
	"gorm.io/gorm"
)

// TrackRepository handles database operations for catalog tracks
type TrackRepository struct {
	db *DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new track into the database
func (r *TrackRepository) Create(ctx context.Context, track *models.Track) error {
	result := r.db.WithContext(ctx).Create(track)
	if result.Error != nil {
		return fmt.Errorf("failed to create track: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a track by its UUID
func (r *TrackRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	var track models.Track
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&track)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &track, nil
}

// GetByIDs retrieves multiple tracks by UUID. Missing IDs are skipped.
func (r *TrackRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	var tracks []*models.Track
	result := r.db.WithContext(ctx).Where("id IN ?", idStrings).Find(&tracks)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get tracks by ids: %w", MapGormError(result.Error))
	}
	return tracks, nil
}

// List retrieves all tracks ordered by creation date (newest first).
// When playableOnly is true, cover art rows are excluded.
func (r *TrackRepository) List(ctx context.Context, playableOnly bool) ([]*models.Track, error) {
	var tracks []*models.Track
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if playableOnly {
		query = query.Where("is_cover_art = ?", false)
	}
	result := query.Find(&tracks)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", MapGormError(result.Error))
	}
	return tracks, nil
}

// GetByAlbum retrieves all tracks for an album ordered by track number
func (r *TrackRepository) GetByAlbum(ctx context.Context, albumName string) ([]*models.Track, error) {
	var tracks []*models.Track
	result := r.db.WithContext(ctx).
		Where("album_name = ?", albumName).
		Order("track_number ASC").
		Find(&tracks)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get tracks by album: %w", MapGormError(result.Error))
	}
	return tracks, nil
}

// TopPlayed retrieves playable tracks ordered by play count descending,
// excluding the given track IDs. Ties are broken by track ID for
// deterministic ordering.
func (r *TrackRepository) TopPlayed(ctx context.Context, limit int, excludeIDs []uuid.UUID) ([]*models.Track, error) {
	query := r.db.WithContext(ctx).
		Where("is_cover_art = ?", false).
		Order("play_count DESC").
		Order("id ASC")

	if len(excludeIDs) > 0 {
		idStrings := make([]string, 0, len(excludeIDs))
		for _, id := range excludeIDs {
			idStrings = append(idStrings, id.String())
		}
		query = query.Where("id NOT IN ?", idStrings)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tracks []*models.Track
	result := query.Find(&tracks)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get top played tracks: %w", MapGormError(result.Error))
	}
	return tracks, nil
}

// IncrementPlayCount atomically increments a track's play count
func (r *TrackRepository) IncrementPlayCount(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Track{}).
		Where("id = ?", id.String()).
		Update("play_count", gorm.Expr("play_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment play count: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a track by its UUID (cascade delete to preferences,
// memberships, entitlements, and recommendation entries)
func (r *TrackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.Track{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete track: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
