package entitlement

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
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
	service := NewService(repos)

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

func TestRecordPurchase_Success(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	entitlement, err := service.RecordPurchase(ctx, userID, track.ID)

	require.NoError(t, err)
	assert.Equal(t, models.EntitlementSourcePurchase, entitlement.Source)
	assert.True(t, entitlement.Purchased())

	hasAccess, err := service.HasAccess(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)
}

func TestRecordPurchase_UnknownTrack(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.RecordPurchase(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.True(t, IsTrackNotFound(err))
}

func TestRecordPurchase_DoublePurchaseRejected(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	_, err := service.RecordPurchase(ctx, userID, track.ID)
	require.NoError(t, err)

	_, err = service.RecordPurchase(ctx, userID, track.ID)
	require.Error(t, err)
	assert.True(t, IsAlreadyPurchased(err))
}

func TestRecordPurchase_UpgradesSubscriptionGrant(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	grant := models.NewEntitlement(userID, track.ID, models.EntitlementSourceSubscription)
	require.NoError(t, repos.Entitlements.Create(ctx, grant))

	upgraded, err := service.RecordPurchase(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.Equal(t, grant.ID, upgraded.ID)
	assert.Equal(t, models.EntitlementSourcePurchase, upgraded.Source)

	// Still a single row
	entitlements, err := service.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, entitlements, 1)
}

func TestHasAccess_NoGrantNoSubscription(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	track := createTestTrack(t, repos, "song")

	hasAccess, err := service.HasAccess(ctx, uuid.New(), track.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)
}

func TestHasAccess_ActiveSubscription(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	_, err := service.ActivateSubscription(ctx, userID, nil)
	require.NoError(t, err)

	hasAccess, err := service.HasAccess(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)
}

func TestHasAccess_CanceledSubscription(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	_, err := service.ActivateSubscription(ctx, userID, nil)
	require.NoError(t, err)
	require.NoError(t, service.CancelSubscription(ctx, userID))

	hasAccess, err := service.HasAccess(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)
}

func TestHasAccess_ExpiredSubscription(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	expired := time.Now().UTC().Add(-time.Hour)
	_, err := service.ActivateSubscription(ctx, userID, &expired)
	require.NoError(t, err)

	hasAccess, err := service.HasAccess(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)
}

func TestHasAccess_GrantSurvivesCancellation(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	_, err := service.ActivateSubscription(ctx, userID, nil)
	require.NoError(t, err)
	_, err = service.EnsureSubscriptionGrant(ctx, userID, track.ID)
	require.NoError(t, err)
	require.NoError(t, service.CancelSubscription(ctx, userID))

	// The materialized grant row still answers access checks
	hasAccess, err := service.HasAccess(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)
}

func TestEnsureSubscriptionGrant_ReusesExisting(t *testing.T) {
	service, repos, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()
	track := createTestTrack(t, repos, "song")

	first, err := service.EnsureSubscriptionGrant(ctx, userID, track.ID)
	require.NoError(t, err)

	second, err := service.EnsureSubscriptionGrant(ctx, userID, track.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entitlements, err := service.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, entitlements, 1)
}

func TestActivateSubscription_Reactivates(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.New()

	created, err := service.ActivateSubscription(ctx, userID, nil)
	require.NoError(t, err)
	require.NoError(t, service.CancelSubscription(ctx, userID))

	reactivated, err := service.ActivateSubscription(ctx, userID, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, reactivated.ID)
	assert.Equal(t, models.SubscriptionStatusActive, reactivated.Status)

	active, err := service.HasActiveSubscription(ctx, userID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestCancelSubscription_NoSubscriptionIsNoop(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	err := service.CancelSubscription(context.Background(), uuid.New())
	require.NoError(t, err)
}

func TestSubscriptionStatus_NeverSubscribed(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	sub, err := service.SubscriptionStatus(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, sub)
}
