// Package entitlement resolves whether a user may access a track's playable
// content. Access comes from a purchase record or from an active
// subscription; subscription access materializes a grant row the first time
// it is needed and reuses it afterwards.
package entitlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/models"
)

// Service handles business logic for entitlement and subscription operations
type Service struct {
	repos *db.Repositories
	now   func() time.Time
}

// NewService creates a new entitlement service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{
		repos: repos,
		now:   time.Now,
	}
}

// HasActiveSubscription reports whether the user holds an unexpired active
// subscription
func (s *Service) HasActiveSubscription(ctx context.Context, userID uuid.UUID) (bool, error) {
	sub, err := s.repos.Subscriptions.GetByUser(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return sub.ActiveAt(s.now().UTC()), nil
}

// HasAccess reports whether the user may play the track: an entitlement row
// exists, or an active subscription covers the general catalog
func (s *Service) HasAccess(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	_, err := s.repos.Entitlements.Get(ctx, userID, trackID)
	if err == nil {
		return true, nil
	}
	if !db.IsNotFound(err) {
		return false, fmt.Errorf("failed to check entitlement: %w", err)
	}

	return s.HasActiveSubscription(ctx, userID)
}

// EnsureSubscriptionGrant returns the user's entitlement for the track,
// materializing a subscription-sourced grant when none exists yet. An
// existing grant of either source is reused, never duplicated.
func (s *Service) EnsureSubscriptionGrant(ctx context.Context, userID, trackID uuid.UUID) (*models.Entitlement, error) {
	existing, err := s.repos.Entitlements.Get(ctx, userID, trackID)
	if err == nil {
		return existing, nil
	}
	if !db.IsNotFound(err) {
		return nil, fmt.Errorf("failed to ensure subscription grant: %w", err)
	}

	grant := models.NewEntitlement(userID, trackID, models.EntitlementSourceSubscription)
	if err := s.repos.Entitlements.Create(ctx, grant); err != nil {
		// A racing request created the grant first; use theirs
		if db.IsDuplicate(err) {
			return s.repos.Entitlements.Get(ctx, userID, trackID)
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("track_id", trackID.String()).
			Msg("Failed to create subscription grant")
		return nil, fmt.Errorf("failed to ensure subscription grant: %w", err)
	}

	logger.Log.Info().
		Str("entitlement_id", grant.ID.String()).
		Str("user_id", userID.String()).
		Str("track_id", trackID.String()).
		Msg("Subscription grant created")
	return grant, nil
}

// RecordPurchase records a completed purchase for a track. A prior
// subscription grant is upgraded to a purchase; a prior purchase is
// rejected.
func (s *Service) RecordPurchase(ctx context.Context, userID, trackID uuid.UUID) (*models.Entitlement, error) {
	if _, err := s.repos.Tracks.GetByID(ctx, trackID); err != nil {
		if db.IsNotFound(err) {
			return nil, fmt.Errorf("failed to record purchase: %w", ErrTrackNotFound)
		}
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	existing, err := s.repos.Entitlements.Get(ctx, userID, trackID)
	if err != nil && !db.IsNotFound(err) {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	if existing != nil {
		if existing.Purchased() {
			return nil, fmt.Errorf("failed to record purchase: %w", ErrAlreadyPurchased)
		}
		if err := s.repos.Entitlements.UpdateSource(ctx, existing.ID, models.EntitlementSourcePurchase); err != nil {
			return nil, fmt.Errorf("failed to record purchase: %w", err)
		}
		existing.Source = models.EntitlementSourcePurchase

		logger.Log.Info().
			Str("entitlement_id", existing.ID.String()).
			Str("user_id", userID.String()).
			Str("track_id", trackID.String()).
			Msg("Subscription grant upgraded to purchase")
		return existing, nil
	}

	purchase := models.NewEntitlement(userID, trackID, models.EntitlementSourcePurchase)
	if err := s.repos.Entitlements.Create(ctx, purchase); err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("track_id", trackID.String()).
			Msg("Failed to record purchase")
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	logger.Log.Info().
		Str("entitlement_id", purchase.ID.String()).
		Str("user_id", userID.String()).
		Str("track_id", trackID.String()).
		Msg("Purchase recorded")
	return purchase, nil
}

// ListByUser retrieves all entitlements held by a user
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Entitlement, error) {
	entitlements, err := s.repos.Entitlements.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return entitlements, nil
}

// ActivateSubscription activates (or reactivates) the user's subscription
func (s *Service) ActivateSubscription(ctx context.Context, userID uuid.UUID, expiresAt *time.Time) (*models.Subscription, error) {
	existing, err := s.repos.Subscriptions.GetByUser(ctx, userID)
	if err != nil && !db.IsNotFound(err) {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	if existing != nil {
		if err := s.repos.Subscriptions.UpdateStatus(ctx, existing.ID, models.SubscriptionStatusActive, expiresAt); err != nil {
			return nil, fmt.Errorf("failed to activate subscription: %w", err)
		}
		existing.Status = models.SubscriptionStatusActive
		existing.ExpiresAt = expiresAt

		logger.Log.Info().
			Str("subscription_id", existing.ID.String()).
			Str("user_id", userID.String()).
			Msg("Subscription reactivated")
		return existing, nil
	}

	sub := models.NewSubscription(userID, expiresAt)
	if err := s.repos.Subscriptions.Create(ctx, sub); err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to create subscription")
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	logger.Log.Info().
		Str("subscription_id", sub.ID.String()).
		Str("user_id", userID.String()).
		Msg("Subscription activated")
	return sub, nil
}

// CancelSubscription cancels the user's subscription. Canceling a user with
// no subscription is a no-op.
func (s *Service) CancelSubscription(ctx context.Context, userID uuid.UUID) error {
	existing, err := s.repos.Subscriptions.GetByUser(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	if err := s.repos.Subscriptions.UpdateStatus(ctx, existing.ID, models.SubscriptionStatusCanceled, existing.ExpiresAt); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	logger.Log.Info().
		Str("subscription_id", existing.ID.String()).
		Str("user_id", userID.String()).
		Msg("Subscription canceled")
	return nil
}

// SubscriptionStatus returns the user's subscription row, or nil when the
// user never subscribed
func (s *Service) SubscriptionStatus(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repos.Subscriptions.GetByUser(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}
