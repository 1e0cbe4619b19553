//go:build integration
// +build integration

package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/resonate-audio/resonate/internal/api"
	"github.com/resonate-audio/resonate/internal/config"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/entitlement"
	"github.com/resonate-audio/resonate/internal/models"
	"github.com/resonate-audio/resonate/internal/playlist"
	"github.com/resonate-audio/resonate/internal/preference"
	"github.com/resonate-audio/resonate/internal/recommend"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temp-file test database with migrations applied
func setupTestDB(t *testing.T) (*db.DB, *db.Repositories, func()) {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err, "Failed to get SQL DB")

	// Get absolute path to migrations directory relative to this file
	// This ensures tests work regardless of working directory
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "Failed to get current file path")

	testDir := filepath.Dir(filename)                     // test/integration
	rootDir := filepath.Dir(filepath.Dir(testDir))        // module root
	migrationsDir := filepath.Join(rootDir, "migrations") // migrations
	migrationsPath := "file://" + migrationsDir

	err = db.RunMigrations(sqlDB, migrationsPath)
	require.NoError(t, err, "Failed to run migrations")

	repos := db.NewRepositories(database)

	cleanup := func() {
		database.Close()
	}

	return database, repos, cleanup
}

// setupTestRouter creates a test Gin router with all service routes wired
func setupTestRouter(database *db.DB, repos *db.Repositories) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add recovery middleware to catch panics in tests
	router.Use(gin.Recovery())

	cfg := &config.RecommendationsConfig{
		ListSize:        20,
		FreshnessWindow: 24 * time.Hour,
		RefreshInterval: time.Hour,
		MinNeighbors:    1,
	}
	entitlements := entitlement.NewService(repos)

	apiGroup := router.Group("/api")
	api.SetupHealthRoutes(apiGroup, database)
	api.SetupReactionRoutes(apiGroup, preference.NewService(repos))
	api.SetupPlaylistRoutes(apiGroup, playlist.NewService(database, repos, entitlements))
	api.SetupRecommendationRoutes(apiGroup, recommend.NewService(repos, cfg))
	api.SetupStoreRoutes(apiGroup, entitlements)

	return router
}

// createTestTrackInDB creates a track directly in the database for testing
func createTestTrackInDB(t *testing.T, repos *db.Repositories, title string, playCount int64) *models.Track {
	t.Helper()

	track := models.NewTrack(title, "Integration Artist", "/audio/"+title+".mp3")
	track.PlayCount = playCount

	err := repos.Tracks.Create(context.Background(), track)
	require.NoError(t, err, "Failed to create test track")

	return track
}
