package entitlement

import "errors"

// Custom entitlement service errors
var (
	// ErrTrackNotFound indicates the referenced track does not exist
	ErrTrackNotFound = errors.New("track not found")

	// ErrAlreadyPurchased indicates the user already purchased the track
	ErrAlreadyPurchased = errors.New("track already purchased")

	// ErrNoAccess indicates the user holds neither a grant nor an active
	// subscription for the track
	ErrNoAccess = errors.New("no entitlement for track")
)

// IsTrackNotFound checks if the error is a track not found error
func IsTrackNotFound(err error) bool {
	return errors.Is(err, ErrTrackNotFound)
}

// IsAlreadyPurchased checks if the error is an already purchased error
func IsAlreadyPurchased(err error) bool {
	return errors.Is(err, ErrAlreadyPurchased)
}

// IsNoAccess checks if the error is a no access error
func IsNoAccess(err error) bool {
	return errors.Is(err, ErrNoAccess)
}
