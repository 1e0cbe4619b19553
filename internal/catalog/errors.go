package catalog

import "errors"

// Custom catalog service errors
var (
	// ErrTrackNotFound indicates the requested track does not exist
	ErrTrackNotFound = errors.New("track not found")

	// ErrNotPlayable indicates the track is a cover art asset
	ErrNotPlayable = errors.New("track is not playable")
)

// IsTrackNotFound checks if the error is a track not found error
func IsTrackNotFound(err error) bool {
	return errors.Is(err, ErrTrackNotFound)
}

// IsNotPlayable checks if the error is a not playable error
func IsNotPlayable(err error) bool {
	return errors.Is(err, ErrNotPlayable)
}
