package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/models"
	"gorm.io/gorm"
)

// SyncResult summarizes one Liked Songs reconciliation pass
type SyncResult struct {
	Playlist *models.Playlist
	Added    int
	Removed  int
	Skipped  int // liked tracks the user cannot currently play
}

// GetOrCreateLikedSongs returns the user's system-generated Liked Songs
// playlist, creating it lazily on first access. Repeated calls return the
// existing row unchanged.
func (s *Service) GetOrCreateLikedSongs(ctx context.Context, userID uuid.UUID) (*models.Playlist, error) {
	existing, err := s.repos.Playlists.GetSystemByName(ctx, userID, models.LikedSongsPlaylistName)
	if err == nil {
		return existing, nil
	}
	if !db.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get liked songs playlist: %w", err)
	}

	playlist := models.NewSystemPlaylist(userID, models.LikedSongsPlaylistName)
	if err := s.repos.Playlists.Create(ctx, playlist); err != nil {
		// A racing request created the playlist first; use theirs
		if db.IsDuplicate(err) {
			return s.repos.Playlists.GetSystemByName(ctx, userID, models.LikedSongsPlaylistName)
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to create liked songs playlist")
		return nil, fmt.Errorf("failed to create liked songs playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlist.ID.String()).
		Str("user_id", userID.String()).
		Msg("Liked songs playlist created")
	return playlist, nil
}

// SyncLikedSongs reconciles the Liked Songs membership against the user's
// current like-set intersected with their catalog access. Liked tracks the
// user owns or is subscription-entitled to are added (materializing a grant
// when needed); tracks no longer liked are removed. The operation is
// idempotent and does not depend on the order likes were added.
func (s *Service) SyncLikedSongs(ctx context.Context, userID uuid.UUID) (*SyncResult, error) {
	playlist, err := s.GetOrCreateLikedSongs(ctx, userID)
	if err != nil {
		return nil, err
	}

	likedIDs, err := s.repos.Preferences.LikedTrackIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sync liked songs: %w", err)
	}

	target, skipped, err := s.resolveTargetMembership(ctx, userID, likedIDs)
	if err != nil {
		return nil, err
	}

	memberships, err := s.repos.PlaylistTracks.GetByPlaylistID(ctx, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sync liked songs: %w", err)
	}
	current := make(map[uuid.UUID]bool, len(memberships))
	for _, membership := range memberships {
		current[membership.TrackID] = true
	}

	var toAdd []uuid.UUID
	for trackID := range target {
		if !current[trackID] {
			toAdd = append(toAdd, trackID)
		}
	}
	var toRemove []uuid.UUID
	for trackID := range current {
		if !target[trackID] {
			toRemove = append(toRemove, trackID)
		}
	}

	// Apply the whole membership delta in one transaction so a storage
	// failure never leaves a half-reconciled playlist
	if len(toAdd) > 0 || len(toRemove) > 0 {
		err = s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
			for _, trackID := range toAdd {
				membership := models.NewPlaylistTrack(playlist.ID, trackID)
				if err := tx.Create(membership).Error; err != nil {
					return fmt.Errorf("failed to add membership: %w", db.MapGormError(err))
				}
			}
			for _, trackID := range toRemove {
				result := tx.
					Where("playlist_id = ? AND track_id = ?", playlist.ID.String(), trackID.String()).
					Delete(&models.PlaylistTrack{})
				if result.Error != nil {
					return fmt.Errorf("failed to remove membership: %w", db.MapGormError(result.Error))
				}
			}
			return nil
		})
		if err != nil {
			logger.Log.Error().
				Err(err).
				Str("playlist_id", playlist.ID.String()).
				Msg("Failed to reconcile liked songs membership")
			return nil, fmt.Errorf("failed to sync liked songs: %w", err)
		}
		if err := s.touchPlaylist(ctx, playlist.ID); err != nil {
			logger.Log.Warn().
				Err(err).
				Str("playlist_id", playlist.ID.String()).
				Msg("Failed to bump playlist timestamp after sync")
		}
	}

	logger.Log.Info().
		Str("playlist_id", playlist.ID.String()).
		Str("user_id", userID.String()).
		Int("added", len(toAdd)).
		Int("removed", len(toRemove)).
		Int("skipped", skipped).
		Msg("Liked songs synchronized")

	return &SyncResult{
		Playlist: playlist,
		Added:    len(toAdd),
		Removed:  len(toRemove),
		Skipped:  skipped,
	}, nil
}

// resolveTargetMembership computes the liked tracks the user can currently
// play. Cover art and unknown IDs are dropped; subscription-based access
// materializes a grant row on first use.
func (s *Service) resolveTargetMembership(ctx context.Context, userID uuid.UUID, likedIDs []uuid.UUID) (map[uuid.UUID]bool, int, error) {
	target := make(map[uuid.UUID]bool, len(likedIDs))
	if len(likedIDs) == 0 {
		return target, 0, nil
	}

	tracks, err := s.repos.Tracks.GetByIDs(ctx, likedIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sync liked songs: %w", err)
	}

	subscribed, err := s.entitlements.HasActiveSubscription(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sync liked songs: %w", err)
	}

	skipped := 0
	for _, track := range tracks {
		if !track.Playable() {
			continue
		}

		_, err := s.repos.Entitlements.Get(ctx, userID, track.ID)
		if err == nil {
			target[track.ID] = true
			continue
		}
		if !db.IsNotFound(err) {
			return nil, 0, fmt.Errorf("failed to sync liked songs: %w", err)
		}

		if !subscribed {
			skipped++
			continue
		}
		if _, err := s.entitlements.EnsureSubscriptionGrant(ctx, userID, track.ID); err != nil {
			return nil, 0, fmt.Errorf("failed to sync liked songs: %w", err)
		}
		target[track.ID] = true
	}
	return target, skipped, nil
}

// touchPlaylist bumps the playlist's updated timestamp after a sync pass
// changed its membership
func (s *Service) touchPlaylist(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&models.Playlist{}).
		Where("id = ?", id.String()).
		Update("updated_at", time.Now().UTC())
	return result.Error
}
