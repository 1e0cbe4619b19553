package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/entitlement"
	"github.com/resonate-audio/resonate/internal/models"
)

// Request/Response DTOs

// PurchaseRequest represents a request to record a track purchase
type PurchaseRequest struct {
	TrackID uuid.UUID `json:"track_id" binding:"required"`
}

// EntitlementListResponse represents a user's entitlements
type EntitlementListResponse struct {
	Items []*models.Entitlement `json:"items"`
	Total int                   `json:"total"`
}

// ActivateSubscriptionRequest represents a subscription activation request
type ActivateSubscriptionRequest struct {
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SubscriptionStatusResponse represents a user's subscription state
type SubscriptionStatusResponse struct {
	Subscription *models.Subscription `json:"subscription"`
	Active       bool                 `json:"active"`
}

// StoreHandler handles purchase and subscription API requests
type StoreHandler struct {
	service *entitlement.Service
}

// NewStoreHandler creates a new store handler instance
func NewStoreHandler(service *entitlement.Service) *StoreHandler {
	return &StoreHandler{service: service}
}

// CreatePurchase handles POST /api/users/:userId/purchases
func (h *StoreHandler) CreatePurchase(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "track_id is required",
		})
		return
	}

	purchase, err := h.service.RecordPurchase(c.Request.Context(), userID, req.TrackID)
	if err != nil {
		switch {
		case entitlement.IsTrackNotFound(err):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "track_not_found",
				Message: "Track not found",
			})
		case entitlement.IsAlreadyPurchased(err):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "already_purchased",
				Message: "Track is already purchased",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "purchase_failed",
				Message: "Failed to record purchase",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// ListEntitlements handles GET /api/users/:userId/entitlements
func (h *StoreHandler) ListEntitlements(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	entitlements, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list entitlements",
		})
		return
	}

	c.JSON(http.StatusOK, EntitlementListResponse{
		Items: entitlements,
		Total: len(entitlements),
	})
}

// ActivateSubscription handles POST /api/users/:userId/subscription
func (h *StoreHandler) ActivateSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	var req ActivateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	sub, err := h.service.ActivateSubscription(c.Request.Context(), userID, req.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "activate_failed",
			Message: "Failed to activate subscription",
		})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// CancelSubscription handles DELETE /api/users/:userId/subscription
func (h *StoreHandler) CancelSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	if err := h.service.CancelSubscription(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "cancel_failed",
			Message: "Failed to cancel subscription",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscription handles GET /api/users/:userId/subscription
func (h *StoreHandler) GetSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	sub, err := h.service.SubscriptionStatus(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get subscription",
		})
		return
	}

	active, err := h.service.HasActiveSubscription(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get subscription",
		})
		return
	}

	c.JSON(http.StatusOK, SubscriptionStatusResponse{
		Subscription: sub,
		Active:       active,
	})
}

// SetupStoreRoutes registers purchase and subscription routes
func SetupStoreRoutes(apiGroup *gin.RouterGroup, service *entitlement.Service) {
	handler := NewStoreHandler(service)
	apiGroup.POST("/users/:userId/purchases", handler.CreatePurchase)
	apiGroup.GET("/users/:userId/entitlements", handler.ListEntitlements)
	apiGroup.POST("/users/:userId/subscription", handler.ActivateSubscription)
	apiGroup.GET("/users/:userId/subscription", handler.GetSubscription)
	apiGroup.DELETE("/users/:userId/subscription", handler.CancelSubscription)
}
