package playlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/entitlement"
	"github.com/resonate-audio/resonate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestService creates a service with a test database
func setupTestService(t *testing.T) (*Service, *db.Repositories, func()) {
	tmpFile := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(tmpFile)
	require.NoError(t, err)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)

	migrationsPath := "file://../../migrations"
	err = db.RunMigrations(sqlDB, migrationsPath)
	require.NoError(t, err)

	repos := db.NewRepositories(database)
	entitlements := entitlement.NewService(repos)
	service := NewService(database, repos, entitlements)

	cleanup := func() {
		_ = database.Close()
	}

	return service, repos, cleanup
}

func createTestTrack(t *testing.T, repos *db.Repositories, title string) *models.Track {
	track := models.NewTrack(title, "Test Artist", "/audio/"+title+".mp3")
	require.NoError(t, repos.Tracks.Create(context.Background(), track))
	return track
}

func purchase(t *testing.T, repos *db.Repositories, userID, trackID uuid.UUID) {
	grant := models.NewEntitlement(userID, trackID, models.EntitlementSourcePurchase)
	require.NoError(t, repos.Entitlements.Create(context.Background(), grant))
}

func TestCreate_Success(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()

	created, err := service.Create(ctx, userID, "Road Trip")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Road Trip", created.Name)
	assert.Equal(t, userID, created.UserID)
	assert.False(t, created.IsSystemGenerated)
}

func TestRename_UserPlaylist(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	created, err := service.Create(ctx, uuid.New(), "Old Name")
	require.NoError(t, err)

	applied, err := service.Rename(ctx, created.ID, "New Name")
	require.NoError(t, err)
	assert.True(t, applied)

	found, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name)
}

func TestRename_SystemPlaylistIgnored(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	likedSongs, err := service.GetOrCreateLikedSongs(ctx, uuid.New())
	require.NoError(t, err)

	applied, err := service.Rename(ctx, likedSongs.ID, "My Favorites")
	require.NoError(t, err)
	assert.False(t, applied)

	found, err := service.GetByID(ctx, likedSongs.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikedSongsPlaylistName, found.Name)
}

func TestDelete_SystemPlaylistIgnored(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	likedSongs, err := service.GetOrCreateLikedSongs(ctx, uuid.New())
	require.NoError(t, err)

	applied, err := service.Delete(ctx, likedSongs.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = service.GetByID(ctx, likedSongs.ID)
	require.NoError(t, err)
}

func TestAddTrack_RequiresEntitlement(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	created, err := service.Create(ctx, userID, "Mine")
	require.NoError(t, err)

	_, err = service.AddTrack(ctx, created.ID, track.ID)
	require.Error(t, err)
	assert.True(t, IsNoEntitlement(err))
}

func TestAddTrack_PurchasedTrack(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")
	purchase(t, repos, userID, track.ID)

	created, err := service.Create(ctx, userID, "Mine")
	require.NoError(t, err)

	membership, err := service.AddTrack(ctx, created.ID, track.ID)
	require.NoError(t, err)
	assert.Equal(t, track.ID, membership.TrackID)

	// Adding again conflicts
	_, err = service.AddTrack(ctx, created.ID, track.ID)
	require.Error(t, err)
	assert.True(t, IsAlreadyInPlaylist(err))
}

func TestAddTrack_SubscriptionMaterializesGrant(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	sub := models.NewSubscription(userID, nil)
	require.NoError(t, repos.Subscriptions.Create(ctx, sub))

	created, err := service.Create(ctx, userID, "Mine")
	require.NoError(t, err)

	_, err = service.AddTrack(ctx, created.ID, track.ID)
	require.NoError(t, err)

	grant, err := repos.Entitlements.Get(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntitlementSourceSubscription, grant.Source)
}

func TestAddTrack_CoverArtRejected(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	cover := models.NewCoverArt("Album Cover", "Test Artist", "/img/cover.png")
	require.NoError(t, repos.Tracks.Create(ctx, cover))

	created, err := service.Create(ctx, userID, "Mine")
	require.NoError(t, err)

	_, err = service.AddTrack(ctx, created.ID, cover.ID)
	require.Error(t, err)
	assert.True(t, IsNotPlayable(err))
}

func TestAddTrack_SystemPlaylistRejected(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")
	purchase(t, repos, userID, track.ID)

	likedSongs, err := service.GetOrCreateLikedSongs(ctx, userID)
	require.NoError(t, err)

	_, err = service.AddTrack(ctx, likedSongs.ID, track.ID)
	require.Error(t, err)
	assert.True(t, IsSystemPlaylist(err))
}

func TestRemoveTrack_NotInPlaylist(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	track := createTestTrack(t, repos, "song")
	created, err := service.Create(ctx, uuid.New(), "Mine")
	require.NoError(t, err)

	err = service.RemoveTrack(ctx, created.ID, track.ID)
	require.Error(t, err)
	assert.True(t, IsTrackNotInPlaylist(err))
}

func TestGetWithTracks_PreservesInsertionOrder(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	first := createTestTrack(t, repos, "first")
	second := createTestTrack(t, repos, "second")
	purchase(t, repos, userID, first.ID)
	purchase(t, repos, userID, second.ID)

	created, err := service.Create(ctx, userID, "Ordered")
	require.NoError(t, err)

	_, err = service.AddTrack(ctx, created.ID, second.ID)
	require.NoError(t, err)
	_, err = service.AddTrack(ctx, created.ID, first.ID)
	require.NoError(t, err)

	found, err := service.GetWithTracks(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Tracks, 2)
	assert.Equal(t, second.ID, found.Tracks[0].ID)
	assert.Equal(t, first.ID, found.Tracks[1].ID)
}
