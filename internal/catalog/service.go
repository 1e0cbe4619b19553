// Package catalog provides access to the track catalog: playable songs and
// their cover art assets, album groupings, and aggregate play counts.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/models"
)

// Service handles business logic for catalog operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new catalog service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{
		repos: repos,
	}
}

// AddTrack adds a track to the catalog
func (s *Service) AddTrack(ctx context.Context, track *models.Track) error {
	if err := s.repos.Tracks.Create(ctx, track); err != nil {
		logger.Log.Error().
			Err(err).
			Str("title", track.Title).
			Msg("Failed to create track")
		return fmt.Errorf("failed to add track: %w", err)
	}

	logger.Log.Info().
		Str("track_id", track.ID.String()).
		Str("title", track.Title).
		Bool("cover_art", track.IsCoverArt).
		Msg("Track added to catalog")
	return nil
}

// GetByID retrieves a track by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	track, err := s.repos.Tracks.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrTrackNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("track_id", id.String()).
			Msg("Failed to get track by ID")
		return nil, fmt.Errorf("failed to get track: %w", err)
	}
	return track, nil
}

// List retrieves all catalog tracks. When playableOnly is true, cover art
// assets are excluded.
func (s *Service) List(ctx context.Context, playableOnly bool) ([]*models.Track, error) {
	tracks, err := s.repos.Tracks.List(ctx, playableOnly)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to list tracks")
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	logger.Log.Debug().
		Int("count", len(tracks)).
		Bool("playable_only", playableOnly).
		Msg("Listed tracks")
	return tracks, nil
}

// GetByAlbum retrieves all tracks for an album ordered by track number
func (s *Service) GetByAlbum(ctx context.Context, albumName string) ([]*models.Track, error) {
	tracks, err := s.repos.Tracks.GetByAlbum(ctx, albumName)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("album", albumName).
			Msg("Failed to get tracks by album")
		return nil, fmt.Errorf("failed to get album tracks: %w", err)
	}
	return tracks, nil
}

// RecordPlay increments a track's aggregate play count. Cover art assets
// cannot be played.
func (s *Service) RecordPlay(ctx context.Context, id uuid.UUID) error {
	track, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !track.Playable() {
		return fmt.Errorf("failed to record play: %w", ErrNotPlayable)
	}

	if err := s.repos.Tracks.IncrementPlayCount(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return ErrTrackNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("track_id", id.String()).
			Msg("Failed to increment play count")
		return fmt.Errorf("failed to record play: %w", err)
	}

	logger.Log.Debug().
		Str("track_id", id.String()).
		Msg("Play recorded")
	return nil
}
