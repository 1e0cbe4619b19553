package preference

import "errors"

// Custom preference service errors
var (
	// ErrConcurrentToggle indicates a racing toggle inserted a preference
	// row first; the operation is safe to retry
	ErrConcurrentToggle = errors.New("preference was modified concurrently")
)

// IsConcurrentToggle checks if the error is a concurrent toggle error
func IsConcurrentToggle(err error) bool {
	return errors.Is(err, ErrConcurrentToggle)
}
