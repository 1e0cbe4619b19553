// Package recommend implements the recommendation engine: a user-based
// collaborative scorer over co-like overlap, a popularity fallback, and a
// cached, periodically regenerated recommendation list per user.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
)

// ScoredTrack is a candidate track with its collaborative score
type ScoredTrack struct {
	TrackID uuid.UUID
	Score   float64
}

// Scorer computes recommendation candidates via user-based collaborative
// filtering: users who share a like with the target are neighbors, and
// their other liked tracks become candidates scored by how many distinct
// neighbors like them. Candidates below the neighbor like floor are dropped.
type Scorer struct {
	repos        *db.Repositories
	minNeighbors int
}

// NewScorer creates a new collaborative scorer instance. minNeighbors is the
// floor on distinct neighbor likes a candidate needs; values below 1 are
// treated as 1.
func NewScorer(repos *db.Repositories, minNeighbors int) *Scorer {
	if minNeighbors < 1 {
		minNeighbors = 1
	}
	return &Scorer{repos: repos, minNeighbors: minNeighbors}
}

// Candidates returns up to limit scored candidates for the target user,
// ranked by neighbor count, then aggregate play count, then track ID.
// A user with no likes yields no candidates; composition with the
// popularity fallback happens in the orchestrator.
func (s *Scorer) Candidates(ctx context.Context, userID uuid.UUID, limit int) ([]ScoredTrack, error) {
	likedIDs, err := s.repos.Preferences.LikedTrackIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}
	if len(likedIDs) == 0 {
		return nil, nil
	}

	dislikedIDs, err := s.repos.Preferences.DislikedTrackIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	liked := make(map[uuid.UUID]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}
	disliked := make(map[uuid.UUID]bool, len(dislikedIDs))
	for _, id := range dislikedIDs {
		disliked[id] = true
	}

	neighborIDs, err := s.repos.Preferences.UsersWhoLike(ctx, likedIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}
	if len(neighborIDs) == 0 {
		return nil, nil
	}

	// Each preference row is unique per (user, track), so counting rows per
	// track counts distinct neighbors
	neighborLikes, err := s.repos.Preferences.LikesByUsers(ctx, neighborIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	coLikes := make(map[uuid.UUID]int)
	for _, pref := range neighborLikes {
		if liked[pref.TrackID] || disliked[pref.TrackID] {
			continue
		}
		coLikes[pref.TrackID]++
	}
	if len(coLikes) == 0 {
		return nil, nil
	}

	candidateIDs := make([]uuid.UUID, 0, len(coLikes))
	for id := range coLikes {
		candidateIDs = append(candidateIDs, id)
	}

	tracks, err := s.repos.Tracks.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	playCounts := make(map[uuid.UUID]int64, len(tracks))
	playable := make(map[uuid.UUID]bool, len(tracks))
	for _, track := range tracks {
		playCounts[track.ID] = track.PlayCount
		playable[track.ID] = track.Playable()
	}

	scored := make([]ScoredTrack, 0, len(coLikes))
	for id, count := range coLikes {
		if !playable[id] || count < s.minNeighbors {
			continue
		}
		scored = append(scored, ScoredTrack{TrackID: id, Score: float64(count)})
	}

	// Rank by co-like count, then popularity, then ID for determinism
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		pi, pj := playCounts[scored[i].TrackID], playCounts[scored[j].TrackID]
		if pi != pj {
			return pi > pj
		}
		return scored[i].TrackID.String() < scored[j].TrackID.String()
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
