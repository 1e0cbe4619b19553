package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
	"github.com/resonate-audio/resonate/internal/preference"
)

// Request/Response DTOs

// ToggleReactionRequest represents a like/dislike toggle request
type ToggleReactionRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// ToggleReactionResponse represents the result of a toggle
type ToggleReactionResponse struct {
	Active bool `json:"active"`
}

// ReactionStatusResponse represents a user's signal and the aggregate counts
// for a track
type ReactionStatusResponse struct {
	Status   models.PreferenceStatus `json:"status"`
	Likes    int64                   `json:"likes"`
	Dislikes int64                   `json:"dislikes"`
}

// ReactionHandler handles like/dislike API requests
type ReactionHandler struct {
	service *preference.Service
}

// NewReactionHandler creates a new reaction handler instance
func NewReactionHandler(service *preference.Service) *ReactionHandler {
	return &ReactionHandler{service: service}
}

// ToggleLike handles POST /api/tracks/:id/like
func (h *ReactionHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.service.ToggleLike)
}

// ToggleDislike handles POST /api/tracks/:id/dislike
func (h *ReactionHandler) ToggleDislike(c *gin.Context) {
	h.toggle(c, h.service.ToggleDislike)
}

func (h *ReactionHandler) toggle(c *gin.Context, fn func(ctx context.Context, userID, trackID uuid.UUID) (bool, error)) {
	trackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid track ID",
		})
		return
	}

	var req ToggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "user_id is required",
		})
		return
	}

	active, err := fn(c.Request.Context(), req.UserID, trackID)
	if err != nil {
		if preference.IsConcurrentToggle(err) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "concurrent_toggle",
				Message: "Preference was modified concurrently, retry",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "toggle_failed",
			Message: "Failed to toggle preference",
		})
		return
	}

	c.JSON(http.StatusOK, ToggleReactionResponse{Active: active})
}

// GetReactions handles GET /api/tracks/:id/reactions
func (h *ReactionHandler) GetReactions(c *gin.Context) {
	trackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid track ID",
		})
		return
	}

	status := models.PreferenceNone
	if userIDParam := c.Query("user_id"); userIDParam != "" {
		userID, err := uuid.Parse(userIDParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_user_id",
				Message: "Invalid user ID",
			})
			return
		}
		status, err = h.service.Status(c.Request.Context(), userID, trackID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "status_failed",
				Message: "Failed to get preference status",
			})
			return
		}
	}

	likes, dislikes, err := h.service.Counts(c.Request.Context(), trackID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "counts_failed",
			Message: "Failed to get reaction counts",
		})
		return
	}

	c.JSON(http.StatusOK, ReactionStatusResponse{
		Status:   status,
		Likes:    likes,
		Dislikes: dislikes,
	})
}

// SetupReactionRoutes registers like/dislike routes
func SetupReactionRoutes(apiGroup *gin.RouterGroup, service *preference.Service) {
	handler := NewReactionHandler(service)
	apiGroup.POST("/tracks/:id/like", handler.ToggleLike)
	apiGroup.POST("/tracks/:id/dislike", handler.ToggleDislike)
	apiGroup.GET("/tracks/:id/reactions", handler.GetReactions)
}
