package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/config"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/models"
)

// Service orchestrates recommendation generation and serves the cached list.
// Freshness checks and generation are separate calls composed by the caller;
// reading the list never triggers generation.
type Service struct {
	repos           *db.Repositories
	scorer          *Scorer
	listSize        int
	freshnessWindow time.Duration
	now             func() time.Time
}

// NewService creates a new recommendation service instance
func NewService(repos *db.Repositories, cfg *config.RecommendationsConfig) *Service {
	return &Service{
		repos:           repos,
		scorer:          NewScorer(repos, cfg.MinNeighbors),
		listSize:        cfg.ListSize,
		freshnessWindow: cfg.FreshnessWindow,
		now:             time.Now,
	}
}

// Generate computes a fresh recommendation list for the user and atomically
// replaces the prior set. Collaborative candidates come first; the
// popularity fallback tops the list up to the configured size. A failed
// generation leaves the existing cache untouched.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID) ([]*models.RecommendationEntry, error) {
	scored, err := s.scorer.Candidates(ctx, userID, s.listSize)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to compute collaborative candidates")
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	chosen := make([]ScoredTrack, 0, s.listSize)
	chosenSet := make(map[uuid.UUID]bool, s.listSize)
	for _, candidate := range scored {
		chosen = append(chosen, candidate)
		chosenSet[candidate.TrackID] = true
	}

	// Top up from the popularity fallback, excluding everything the user
	// already likes, dislikes, or was just given
	if len(chosen) < s.listSize {
		fallback, err := s.fallbackCandidates(ctx, userID, s.listSize-len(chosen), chosenSet)
		if err != nil {
			logger.Log.Error().
				Err(err).
				Str("user_id", userID.String()).
				Msg("Failed to compute fallback candidates")
			return nil, fmt.Errorf("failed to generate recommendations: %w", err)
		}
		chosen = append(chosen, fallback...)
	}

	generatedAt := s.now().UTC()
	entries := make([]*models.RecommendationEntry, 0, len(chosen))
	for i, candidate := range chosen {
		entries = append(entries, models.NewRecommendationEntry(userID, candidate.TrackID, i+1, candidate.Score, generatedAt))
	}

	if err := s.repos.Recommendations.Replace(ctx, userID, entries); err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to replace recommendation entries")
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	logger.Log.Info().
		Str("user_id", userID.String()).
		Int("count", len(entries)).
		Time("generated_at", generatedAt).
		Msg("Recommendations generated")
	return entries, nil
}

// fallbackCandidates ranks catalog tracks by aggregate play count, skipping
// tracks the user already liked, disliked, or already has in the list
func (s *Service) fallbackCandidates(ctx context.Context, userID uuid.UUID, limit int, chosenSet map[uuid.UUID]bool) ([]ScoredTrack, error) {
	likedIDs, err := s.repos.Preferences.LikedTrackIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	dislikedIDs, err := s.repos.Preferences.DislikedTrackIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	excludeIDs := make([]uuid.UUID, 0, len(likedIDs)+len(dislikedIDs)+len(chosenSet))
	excludeIDs = append(excludeIDs, likedIDs...)
	excludeIDs = append(excludeIDs, dislikedIDs...)
	for id := range chosenSet {
		excludeIDs = append(excludeIDs, id)
	}

	tracks, err := s.repos.Tracks.TopPlayed(ctx, limit, excludeIDs)
	if err != nil {
		return nil, err
	}

	// Fallback entries carry no collaborative signal
	fallback := make([]ScoredTrack, 0, len(tracks))
	for _, track := range tracks {
		fallback = append(fallback, ScoredTrack{TrackID: track.ID, Score: 0})
	}
	return fallback, nil
}

// IsFresh reports whether the user's cached recommendation list was
// generated within the freshness window
func (s *Service) IsFresh(ctx context.Context, userID uuid.UUID) (bool, error) {
	generatedAt, err := s.repos.Recommendations.LatestGeneratedAt(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check recommendation freshness: %w", err)
	}
	return s.now().UTC().Sub(generatedAt) <= s.freshnessWindow, nil
}

// Playlist returns the user's cached recommendation entries in display
// order with track data populated. An empty list is a valid state; callers
// wanting a fresh list compose IsFresh and Generate themselves.
func (s *Service) Playlist(ctx context.Context, userID uuid.UUID) ([]*models.RecommendationEntry, error) {
	entries, err := s.repos.Recommendations.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	trackIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		trackIDs = append(trackIDs, entry.TrackID)
	}
	tracks, err := s.repos.Tracks.GetByIDs(ctx, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Track, len(tracks))
	for _, track := range tracks {
		byID[track.ID] = track
	}
	for _, entry := range entries {
		entry.Track = byID[entry.TrackID]
	}
	return entries, nil
}
