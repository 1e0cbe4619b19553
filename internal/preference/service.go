// Package preference implements the like/dislike signal store. A user holds
// at most one preference per track; toggling the same direction twice
// removes the row, and the opposite direction overwrites it. Toggles have no
// side effects on playlists or recommendations, which are synchronized by
// their own explicitly triggered operations.
package preference

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/models"
)

// Service handles business logic for preference operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new preference service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{
		repos: repos,
	}
}

// ToggleLike toggles the like signal for a track. Returns true when the
// result is an active like, false when the toggle removed an existing like.
func (s *Service) ToggleLike(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	return s.toggle(ctx, userID, trackID, true)
}

// ToggleDislike toggles the dislike signal for a track. Returns true when
// the result is an active dislike, false when the toggle removed an existing
// dislike.
func (s *Service) ToggleDislike(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	return s.toggle(ctx, userID, trackID, false)
}

// toggle implements the shared toggle semantics as a read-check-then-write.
// The unique index on (user_id, track_id) is the backstop against racing
// duplicate toggles; a duplicate insert surfaces as ErrConcurrentToggle and
// the caller may retry.
func (s *Service) toggle(ctx context.Context, userID, trackID uuid.UUID, liked bool) (bool, error) {
	existing, err := s.repos.Preferences.Get(ctx, userID, trackID)
	if err != nil && !db.IsNotFound(err) {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("track_id", trackID.String()).
			Msg("Failed to read preference")
		return false, fmt.Errorf("failed to toggle preference: %w", err)
	}

	// No stored preference: create one in the requested direction
	if existing == nil {
		pref := models.NewPreference(userID, trackID, liked)
		if err := s.repos.Preferences.Create(ctx, pref); err != nil {
			if db.IsDuplicate(err) {
				return false, fmt.Errorf("failed to toggle preference: %w", ErrConcurrentToggle)
			}
			logger.Log.Error().
				Err(err).
				Str("user_id", userID.String()).
				Str("track_id", trackID.String()).
				Msg("Failed to create preference")
			return false, fmt.Errorf("failed to toggle preference: %w", err)
		}

		logger.Log.Debug().
			Str("user_id", userID.String()).
			Str("track_id", trackID.String()).
			Bool("liked", liked).
			Msg("Preference created")
		return true, nil
	}

	// Same direction again: remove the row, back to neutral
	if existing.Liked == liked {
		if err := s.repos.Preferences.Delete(ctx, existing.ID); err != nil {
			logger.Log.Error().
				Err(err).
				Str("preference_id", existing.ID.String()).
				Msg("Failed to delete preference")
			return false, fmt.Errorf("failed to toggle preference: %w", err)
		}

		logger.Log.Debug().
			Str("user_id", userID.String()).
			Str("track_id", trackID.String()).
			Bool("liked", liked).
			Msg("Preference removed")
		return false, nil
	}

	// Opposite direction: overwrite in place
	if err := s.repos.Preferences.UpdateLiked(ctx, existing.ID, liked); err != nil {
		logger.Log.Error().
			Err(err).
			Str("preference_id", existing.ID.String()).
			Msg("Failed to update preference")
		return false, fmt.Errorf("failed to toggle preference: %w", err)
	}

	logger.Log.Debug().
		Str("user_id", userID.String()).
		Str("track_id", trackID.String()).
		Bool("liked", liked).
		Msg("Preference flipped")
	return true, nil
}

// Status returns the user's stored signal for a track
func (s *Service) Status(ctx context.Context, userID, trackID uuid.UUID) (models.PreferenceStatus, error) {
	pref, err := s.repos.Preferences.Get(ctx, userID, trackID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.PreferenceNone, nil
		}
		return models.PreferenceNone, fmt.Errorf("failed to get preference status: %w", err)
	}

	if pref.Liked {
		return models.PreferenceLike, nil
	}
	return models.PreferenceDislike, nil
}

// Counts returns the aggregate like and dislike counts for a track
func (s *Service) Counts(ctx context.Context, trackID uuid.UUID) (likes int64, dislikes int64, err error) {
	likes, dislikes, err = s.repos.Preferences.Counts(ctx, trackID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("track_id", trackID.String()).
			Msg("Failed to count preferences")
		return 0, 0, fmt.Errorf("failed to count preferences: %w", err)
	}
	return likes, dislikes, nil
}

// LikedTrackIDs returns the IDs of all tracks the user has liked
func (s *Service) LikedTrackIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.repos.Preferences.LikedTrackIDs(ctx, userID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to get liked track ids")
		return nil, fmt.Errorf("failed to get liked tracks: %w", err)
	}
	return ids, nil
}
