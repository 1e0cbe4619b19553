package models

// Entitlement source constants
const (
	EntitlementSourcePurchase     = "purchase"
	EntitlementSourceSubscription = "subscription"
)

// Subscription status constants
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// PreferenceStatus describes a user's stored signal for a track
type PreferenceStatus string

// Preference status values
const (
	PreferenceLike    PreferenceStatus = "like"
	PreferenceDislike PreferenceStatus = "dislike"
	PreferenceNone    PreferenceStatus = "none"
)

// LikedSongsPlaylistName is the fixed name of the system-generated playlist
// that mirrors a user's liked tracks. Other components look the playlist up
// by this name together with the system-generated flag.
const LikedSongsPlaylistName = "Liked Songs"
