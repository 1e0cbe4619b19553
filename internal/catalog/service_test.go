package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestService creates a service with a test database
func setupTestService(t *testing.T) (*Service, func()) {
	tmpFile := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(tmpFile)
	require.NoError(t, err)

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)

	migrationsPath := "file://../../migrations"
	err = db.RunMigrations(sqlDB, migrationsPath)
	require.NoError(t, err)

	repos := db.NewRepositories(database)
	service := NewService(repos)

	cleanup := func() {
		_ = database.Close()
	}

	return service, cleanup
}

func TestAddTrack_Success(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	track := models.NewTrack("Song", "Artist", "/audio/song.mp3")

	err := service.AddTrack(ctx, track)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, track.ID)

	found, err := service.GetByID(ctx, track.ID)
	require.NoError(t, err)
	assert.Equal(t, "Song", found.Title)
	assert.True(t, found.Playable())
}

func TestGetByID_NotFound(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.GetByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, IsTrackNotFound(err))
}

func TestList_PlayableOnlyExcludesCoverArt(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	song := models.NewTrack("Song", "Artist", "/audio/song.mp3")
	require.NoError(t, service.AddTrack(ctx, song))
	cover := models.NewCoverArt("Cover", "Artist", "/img/cover.png")
	require.NoError(t, service.AddTrack(ctx, cover))

	all, err := service.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	playable, err := service.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, playable, 1)
	assert.Equal(t, song.ID, playable[0].ID)
}

func TestGetByAlbum_OrderedByTrackNumber(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	album := "Test Album"

	second := models.NewTrack("Second", "Artist", "/audio/second.mp3")
	second.AlbumName = &album
	two := 2
	second.TrackNumber = &two
	require.NoError(t, service.AddTrack(ctx, second))

	first := models.NewTrack("First", "Artist", "/audio/first.mp3")
	first.AlbumName = &album
	one := 1
	first.TrackNumber = &one
	require.NoError(t, service.AddTrack(ctx, first))

	tracks, err := service.GetByAlbum(ctx, album)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "First", tracks[0].Title)
	assert.Equal(t, "Second", tracks[1].Title)
}

func TestRecordPlay_IncrementsCount(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	track := models.NewTrack("Song", "Artist", "/audio/song.mp3")
	require.NoError(t, service.AddTrack(ctx, track))

	require.NoError(t, service.RecordPlay(ctx, track.ID))
	require.NoError(t, service.RecordPlay(ctx, track.ID))

	found, err := service.GetByID(ctx, track.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.PlayCount)
}

func TestRecordPlay_CoverArtRejected(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	cover := models.NewCoverArt("Cover", "Artist", "/img/cover.png")
	require.NoError(t, service.AddTrack(ctx, cover))

	err := service.RecordPlay(ctx, cover.ID)

	require.Error(t, err)
	assert.True(t, IsNotPlayable(err))
}

func TestRecordPlay_NotFound(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	err := service.RecordPlay(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, IsTrackNotFound(err))
}
