package playlist

import "errors"

// Custom playlist service errors
var (
	// ErrPlaylistNotFound indicates the requested playlist does not exist
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrTrackNotFound indicates the requested track does not exist
	ErrTrackNotFound = errors.New("track not found")

	// ErrSystemPlaylist indicates a direct mutation of a system-generated
	// playlist's membership
	ErrSystemPlaylist = errors.New("playlist is system-generated")

	// ErrNotPlayable indicates the track is a cover art asset
	ErrNotPlayable = errors.New("track is not playable")

	// ErrNoEntitlement indicates the user may not access the track
	ErrNoEntitlement = errors.New("user is not entitled to track")

	// ErrAlreadyInPlaylist indicates the track is already a member
	ErrAlreadyInPlaylist = errors.New("track already in playlist")

	// ErrTrackNotInPlaylist indicates the track is not a member
	ErrTrackNotInPlaylist = errors.New("track not in playlist")
)

// IsPlaylistNotFound checks if the error is a playlist not found error
func IsPlaylistNotFound(err error) bool {
	return errors.Is(err, ErrPlaylistNotFound)
}

// IsTrackNotFound checks if the error is a track not found error
func IsTrackNotFound(err error) bool {
	return errors.Is(err, ErrTrackNotFound)
}

// IsSystemPlaylist checks if the error is a system playlist error
func IsSystemPlaylist(err error) bool {
	return errors.Is(err, ErrSystemPlaylist)
}

// IsNotPlayable checks if the error is a not playable error
func IsNotPlayable(err error) bool {
	return errors.Is(err, ErrNotPlayable)
}

// IsNoEntitlement checks if the error is a no entitlement error
func IsNoEntitlement(err error) bool {
	return errors.Is(err, ErrNoEntitlement)
}

// IsAlreadyInPlaylist checks if the error is an already in playlist error
func IsAlreadyInPlaylist(err error) bool {
	return errors.Is(err, ErrAlreadyInPlaylist)
}

// IsTrackNotInPlaylist checks if the error is a track not in playlist error
func IsTrackNotInPlaylist(err error) bool {
	return errors.Is(err, ErrTrackNotInPlaylist)
}
