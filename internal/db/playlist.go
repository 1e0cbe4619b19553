package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
)

// PlaylistRepository handles database operations for playlists
type PlaylistRepository struct {
	db *DB
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist into the database
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	result := r.db.WithContext(ctx).Create(playlist)
	if result.Error != nil {
		return fmt.Errorf("failed to create playlist: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a playlist by its UUID
func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&playlist)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &playlist, nil
}

// ListByUser retrieves all playlists for a user ordered by creation date
// (newest first)
func (r *PlaylistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Find(&playlists)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", MapGormError(result.Error))
	}
	return playlists, nil
}

// GetSystemByName retrieves a user's system-generated playlist by its fixed
// name. Returns ErrNotFound if no such playlist exists yet.
func (r *PlaylistRepository) GetSystemByName(ctx context.Context, userID uuid.UUID, name string) (*models.Playlist, error) {
	var playlist models.Playlist
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND is_system_generated = ?", userID.String(), name, true).
		First(&playlist)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &playlist, nil
}

// Rename updates a playlist's name
func (r *PlaylistRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).Model(&models.Playlist{}).
		Where("id = ?", id.String()).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to rename playlist: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a playlist by its UUID (cascade delete to memberships)
func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.Playlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PlaylistTrackRepository handles database operations for playlist
// memberships
type PlaylistTrackRepository struct {
	db *DB
}

// NewPlaylistTrackRepository creates a new playlist track repository
func NewPlaylistTrackRepository(db *DB) *PlaylistTrackRepository {
	return &PlaylistTrackRepository{db: db}
}

// Create inserts a new membership into the database. The unique index on
// (playlist_id, track_id) rejects duplicate memberships.
func (r *PlaylistTrackRepository) Create(ctx context.Context, item *models.PlaylistTrack) error {
	result := r.db.WithContext(ctx).Create(item)
	if result.Error != nil {
		return fmt.Errorf("failed to create playlist track: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByPlaylistID retrieves all memberships for a playlist ordered by when
// they were added
func (r *PlaylistTrackRepository) GetByPlaylistID(ctx context.Context, playlistID uuid.UUID) ([]*models.PlaylistTrack, error) {
	var items []*models.PlaylistTrack
	result := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID.String()).
		Order("created_at ASC").
		Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get playlist tracks: %w", MapGormError(result.Error))
	}
	return items, nil
}

// Delete removes a membership by playlist and track
func (r *PlaylistTrackRepository) Delete(ctx context.Context, playlistID, trackID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND track_id = ?", playlistID.String(), trackID.String()).
		Delete(&models.PlaylistTrack{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist track: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
