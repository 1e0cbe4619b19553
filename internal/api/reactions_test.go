package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/models"
	"github.com/resonate-audio/resonate/internal/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a test database backed by a temporary file
func setupTestDB(t *testing.T) (*db.DB, *db.Repositories, func()) {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	err = db.RunMigrations(sqlDB, "file://../../migrations")
	require.NoError(t, err)

	repos := db.NewRepositories(database)

	cleanup := func() {
		_ = database.Close()
	}

	return database, repos, cleanup
}

// createTestTrack creates a playable track in the database for testing
func createTestTrack(t *testing.T, repos *db.Repositories, title string) *models.Track {
	t.Helper()

	track := models.NewTrack(title, "Test Artist", "/audio/"+title+".mp3")
	require.NoError(t, repos.Tracks.Create(context.Background(), track))
	return track
}

// setupReactionRouter creates a test Gin router with reaction routes
func setupReactionRouter(repos *db.Repositories) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api")
	SetupReactionRoutes(apiGroup, preference.NewService(repos))
	return router
}

func toggleRequest(t *testing.T, router *gin.Engine, action string, trackID, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(ToggleReactionRequest{UserID: userID})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/tracks/%s/%s", trackID, action), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestToggleLikeEndpoint(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()

	router := setupReactionRouter(repos)
	track := createTestTrack(t, repos, "song")
	userID := uuid.New()

	t.Run("First toggle activates", func(t *testing.T) {
		w := toggleRequest(t, router, "like", track.ID, userID)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp ToggleReactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Active)
	})

	t.Run("Second toggle deactivates", func(t *testing.T) {
		w := toggleRequest(t, router, "like", track.ID, userID)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp ToggleReactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Active)
	})

	t.Run("Invalid track ID returns error", func(t *testing.T) {
		body, _ := json.Marshal(ToggleReactionRequest{UserID: userID})
		req := httptest.NewRequest("POST", "/api/tracks/not-a-uuid/like", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_id", resp.Error)
	})

	t.Run("Missing user ID returns error", func(t *testing.T) {
		req := httptest.NewRequest("POST", fmt.Sprintf("/api/tracks/%s/like", track.ID), bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestToggleDislikeOverwritesLike(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()

	router := setupReactionRouter(repos)
	track := createTestTrack(t, repos, "song")
	userID := uuid.New()

	w := toggleRequest(t, router, "like", track.ID, userID)
	assert.Equal(t, http.StatusOK, w.Code)

	w = toggleRequest(t, router, "dislike", track.ID, userID)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ToggleReactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Active)

	// Aggregate counts reflect the single dislike row
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/tracks/%s/reactions?user_id=%s", track.ID, userID), nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var status ReactionStatusResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	assert.Equal(t, models.PreferenceDislike, status.Status)
	assert.Equal(t, int64(0), status.Likes)
	assert.Equal(t, int64(1), status.Dislikes)
}

func TestGetReactionsWithoutUser(t *testing.T) {
	_, repos, cleanup := setupTestDB(t)
	defer cleanup()

	router := setupReactionRouter(repos)
	track := createTestTrack(t, repos, "song")

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/tracks/%s/reactions", track.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ReactionStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.PreferenceNone, resp.Status)
}
