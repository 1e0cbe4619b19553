// Package playlist implements user playlists and the system-generated Liked
// Songs playlist. System-generated playlists are owned by internal logic:
// rename and delete attempts fail silently, and their membership is only
// changed by the synchronizer.
package playlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/entitlement"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/models"
)

// Service handles business logic for playlist operations
type Service struct {
	db           *db.DB
	repos        *db.Repositories
	entitlements *entitlement.Service
}

// NewService creates a new playlist service instance
func NewService(database *db.DB, repos *db.Repositories, entitlements *entitlement.Service) *Service {
	return &Service{
		db:           database,
		repos:        repos,
		entitlements: entitlements,
	}
}

// Create creates a new user-editable playlist
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Playlist, error) {
	playlist := models.NewPlaylist(userID, name)
	if err := s.repos.Playlists.Create(ctx, playlist); err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("name", name).
			Msg("Failed to create playlist")
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlist.ID.String()).
		Str("user_id", userID.String()).
		Str("name", name).
		Msg("Playlist created")
	return playlist, nil
}

// GetByID retrieves a playlist by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.repos.Playlists.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return playlist, nil
}

// ListByUser retrieves all playlists belonging to a user
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Playlist, error) {
	playlists, err := s.repos.Playlists.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to list playlists")
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// GetWithTracks retrieves a playlist with its member tracks populated in
// the order they were added
func (s *Service) GetWithTracks(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	memberships, err := s.repos.PlaylistTracks.GetByPlaylistID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist tracks: %w", err)
	}
	if len(memberships) == 0 {
		playlist.Tracks = []*models.Track{}
		return playlist, nil
	}

	trackIDs := make([]uuid.UUID, 0, len(memberships))
	for _, membership := range memberships {
		trackIDs = append(trackIDs, membership.TrackID)
	}
	tracks, err := s.repos.Tracks.GetByIDs(ctx, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist tracks: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Track, len(tracks))
	for _, track := range tracks {
		byID[track.ID] = track
	}
	playlist.Tracks = make([]*models.Track, 0, len(memberships))
	for _, membership := range memberships {
		if track, ok := byID[membership.TrackID]; ok {
			playlist.Tracks = append(playlist.Tracks, track)
		}
	}
	return playlist, nil
}

// Rename renames a playlist. Returns false without error when the playlist
// is system-generated; its name is its identity and must stay predictable.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (bool, error) {
	playlist, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if playlist.IsSystemGenerated {
		logger.Log.Warn().
			Str("playlist_id", id.String()).
			Msg("Rename of system-generated playlist ignored")
		return false, nil
	}

	if err := s.repos.Playlists.Rename(ctx, id, name); err != nil {
		logger.Log.Error().
			Err(err).
			Str("playlist_id", id.String()).
			Msg("Failed to rename playlist")
		return false, fmt.Errorf("failed to rename playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", id.String()).
		Str("name", name).
		Msg("Playlist renamed")
	return true, nil
}

// Delete deletes a playlist. Returns false without error when the playlist
// is system-generated.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	playlist, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if playlist.IsSystemGenerated {
		logger.Log.Warn().
			Str("playlist_id", id.String()).
			Msg("Delete of system-generated playlist ignored")
		return false, nil
	}

	if err := s.repos.Playlists.Delete(ctx, id); err != nil {
		logger.Log.Error().
			Err(err).
			Str("playlist_id", id.String()).
			Msg("Failed to delete playlist")
		return false, fmt.Errorf("failed to delete playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", id.String()).
		Msg("Playlist deleted")
	return true, nil
}

// AddTrack adds a track to a user-editable playlist. The caller must be
// entitled to the track; subscription-only access materializes a grant.
func (s *Service) AddTrack(ctx context.Context, playlistID, trackID uuid.UUID) (*models.PlaylistTrack, error) {
	playlist, err := s.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.IsSystemGenerated {
		return nil, fmt.Errorf("failed to add track to playlist: %w", ErrSystemPlaylist)
	}

	track, err := s.repos.Tracks.GetByID(ctx, trackID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, fmt.Errorf("failed to add track to playlist: %w", ErrTrackNotFound)
		}
		return nil, fmt.Errorf("failed to add track to playlist: %w", err)
	}
	if !track.Playable() {
		return nil, fmt.Errorf("failed to add track to playlist: %w", ErrNotPlayable)
	}

	hasAccess, err := s.entitlements.HasAccess(ctx, playlist.UserID, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to add track to playlist: %w", err)
	}
	if !hasAccess {
		return nil, fmt.Errorf("failed to add track to playlist: %w", ErrNoEntitlement)
	}

	// Subscription access is backed by a concrete grant row, created on
	// first use and reused afterwards
	if _, err := s.entitlements.EnsureSubscriptionGrant(ctx, playlist.UserID, trackID); err != nil {
		return nil, fmt.Errorf("failed to add track to playlist: %w", err)
	}

	membership := models.NewPlaylistTrack(playlistID, trackID)
	if err := s.repos.PlaylistTracks.Create(ctx, membership); err != nil {
		if db.IsDuplicate(err) {
			return nil, fmt.Errorf("failed to add track to playlist: %w", ErrAlreadyInPlaylist)
		}
		logger.Log.Error().
			Err(err).
			Str("playlist_id", playlistID.String()).
			Str("track_id", trackID.String()).
			Msg("Failed to add track to playlist")
		return nil, fmt.Errorf("failed to add track to playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlistID.String()).
		Str("track_id", trackID.String()).
		Msg("Track added to playlist")
	return membership, nil
}

// RemoveTrack removes a track from a user-editable playlist
func (s *Service) RemoveTrack(ctx context.Context, playlistID, trackID uuid.UUID) error {
	playlist, err := s.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.IsSystemGenerated {
		return fmt.Errorf("failed to remove track from playlist: %w", ErrSystemPlaylist)
	}

	if err := s.repos.PlaylistTracks.Delete(ctx, playlistID, trackID); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("failed to remove track from playlist: %w", ErrTrackNotInPlaylist)
		}
		logger.Log.Error().
			Err(err).
			Str("playlist_id", playlistID.String()).
			Str("track_id", trackID.String()).
			Msg("Failed to remove track from playlist")
		return fmt.Errorf("failed to remove track from playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlistID.String()).
		Str("track_id", trackID.String()).
		Msg("Track removed from playlist")
	return nil
}
