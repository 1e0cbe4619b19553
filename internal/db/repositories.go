package db

// Repositories provides access to all database repositories
type Repositories struct {
	Tracks          *TrackRepository
	Preferences     *PreferenceRepository
	Playlists       *PlaylistRepository
	PlaylistTracks  *PlaylistTrackRepository
	Entitlements    *EntitlementRepository
	Subscriptions   *SubscriptionRepository
	Recommendations *RecommendationRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Tracks:          NewTrackRepository(db),
		Preferences:     NewPreferenceRepository(db),
		Playlists:       NewPlaylistRepository(db),
		PlaylistTracks:  NewPlaylistTrackRepository(db),
		Entitlements:    NewEntitlementRepository(db),
		Subscriptions:   NewSubscriptionRepository(db),
		Recommendations: NewRecommendationRepository(db),
	}
}
