package recommend

import (
	"context"
	"time"

	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/logger"
)

// Refresher periodically regenerates recommendation sets that have aged out
// of the freshness window. Users with no cached set are not touched; their
// first list is generated on demand through the API.
type Refresher struct {
	repos       *db.Repositories
	service     *Service
	interval    time.Duration
	stopRefresh chan struct{} // Signal to stop refresh goroutine
	refreshDone chan struct{} // Signal when refresh goroutine has stopped
}

// NewRefresher creates a new recommendation refresher instance
func NewRefresher(repos *db.Repositories, service *Service, interval time.Duration) *Refresher {
	return &Refresher{
		repos:       repos,
		service:     service,
		interval:    interval,
		stopRefresh: make(chan struct{}),
		refreshDone: make(chan struct{}),
	}
}

// Start launches the background refresh goroutine
func (r *Refresher) Start() {
	go r.runRefreshLoop()
}

// Stop gracefully stops the refresher's background goroutine
func (r *Refresher) Stop() {
	close(r.stopRefresh)
	<-r.refreshDone
	logger.Log.Debug().Msg("Recommendation refresh goroutine stopped")
}

// runRefreshLoop runs the periodic regeneration of stale recommendation sets
func (r *Refresher) runRefreshLoop() {
	defer close(r.refreshDone)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger.Log.Debug().
		Dur("interval", r.interval).
		Msg("Started recommendation refresh goroutine")

	for {
		select {
		case <-r.stopRefresh:
			return
		case <-ticker.C:
			r.RefreshStale(context.Background())
		}
	}
}

// RefreshStale regenerates recommendation sets older than the freshness
// window. Failures for one user do not stop the sweep; a failed generation
// leaves that user's prior cache intact.
func (r *Refresher) RefreshStale(ctx context.Context) {
	cutoff := r.service.now().UTC().Add(-r.service.freshnessWindow)

	userIDs, err := r.repos.Recommendations.StaleUserIDs(ctx, cutoff)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to find stale recommendation sets")
		return
	}
	if len(userIDs) == 0 {
		return
	}

	refreshed := 0
	for _, userID := range userIDs {
		if _, err := r.service.Generate(ctx, userID); err != nil {
			logger.Log.Warn().
				Err(err).
				Str("user_id", userID.String()).
				Msg("Failed to refresh recommendations for user")
			continue
		}
		refreshed++
	}

	logger.Log.Info().
		Int("stale", len(userIDs)).
		Int("refreshed", refreshed).
		Msg("Stale recommendation sets refreshed")
}
