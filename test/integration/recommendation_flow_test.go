//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecommendationFlow exercises the full loop: users react to tracks, the
// collaborative scorer picks up the overlap, and the recommendation list
// reflects it end to end through the HTTP surface.
func TestRecommendationFlow(t *testing.T) {
	database, repos, cleanup := setupTestDB(t)
	defer cleanup()

	router := setupTestRouter(database, repos)

	shared := createTestTrackInDB(t, repos, "shared", 10)
	candidate := createTestTrackInDB(t, repos, "candidate", 5)
	filler := createTestTrackInDB(t, repos, "filler", 1)

	target := uuid.New()
	neighbor := uuid.New()

	toggle := func(userID, trackID uuid.UUID, action string) {
		body, err := json.Marshal(api.ToggleReactionRequest{UserID: userID})
		require.NoError(t, err)
		req := httptest.NewRequest("POST", fmt.Sprintf("/api/tracks/%s/%s", trackID, action), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// The neighbor shares a like with the target and also likes "candidate"
	toggle(target, shared.ID, "like")
	toggle(neighbor, shared.ID, "like")
	toggle(neighbor, candidate.ID, "like")

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/users/%s/recommendations", target), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RecommendationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Collaborative candidate first, popularity fallback after, and the
	// target's own liked track never appears
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, candidate.ID, resp.Items[0].TrackID)
	assert.Equal(t, float64(1), resp.Items[0].Score)
	assert.Equal(t, filler.ID, resp.Items[1].TrackID)
	assert.Equal(t, float64(0), resp.Items[1].Score)
}

// TestLikedSongsFlow drives likes, subscription, and the liked songs
// synchronizer through the HTTP surface.
func TestLikedSongsFlow(t *testing.T) {
	database, repos, cleanup := setupTestDB(t)
	defer cleanup()

	router := setupTestRouter(database, repos)

	track := createTestTrackInDB(t, repos, "loved", 0)
	userID := uuid.New()

	// Like before having any access: the sync skips the track
	body, err := json.Marshal(api.ToggleReactionRequest{UserID: userID})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/tracks/%s/like", track.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/users/%s/liked-songs", userID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var synced api.LikedSongsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &synced))
	assert.Equal(t, 1, synced.Skipped)
	assert.Empty(t, synced.Playlist.Tracks)

	// Purchase the track and sync again: it lands in the playlist
	purchaseBody, err := json.Marshal(api.PurchaseRequest{TrackID: track.ID})
	require.NoError(t, err)
	req = httptest.NewRequest("POST", fmt.Sprintf("/api/users/%s/purchases", userID), bytes.NewBuffer(purchaseBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/users/%s/liked-songs", userID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &synced))
	assert.Equal(t, 1, synced.Added)
	require.Len(t, synced.Playlist.Tracks, 1)
	assert.Equal(t, track.ID, synced.Playlist.Tracks[0].ID)
}
