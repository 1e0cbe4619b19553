package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
	"github.com/resonate-audio/resonate/internal/recommend"
)

// RecommendationsResponse represents a user's recommendation list
type RecommendationsResponse struct {
	Items []*models.RecommendationEntry `json:"items"`
	Total int                           `json:"total"`
	Fresh bool                          `json:"fresh"`
}

// RecommendationHandler handles recommendation API requests
type RecommendationHandler struct {
	service *recommend.Service
}

// NewRecommendationHandler creates a new recommendation handler instance
func NewRecommendationHandler(service *recommend.Service) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// GetRecommendations handles GET /api/users/:userId/recommendations.
// A stale or missing list is regenerated before it is returned, so the
// response always reflects the user's current preference signals.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	fresh, err := h.service.IsFresh(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "freshness_check_failed",
			Message: "Failed to check recommendation freshness",
		})
		return
	}
	if !fresh {
		if _, err := h.service.Generate(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "generate_failed",
				Message: "Failed to generate recommendations",
			})
			return
		}
	}

	entries, err := h.service.Playlist(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get recommendations",
		})
		return
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		Items: entries,
		Total: len(entries),
		Fresh: true,
	})
}

// RefreshRecommendations handles POST /api/users/:userId/recommendations/refresh.
// Regenerates the list unconditionally, ignoring the freshness window.
func (h *RecommendationHandler) RefreshRecommendations(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	entries, err := h.service.Generate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "generate_failed",
			Message: "Failed to generate recommendations",
		})
		return
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		Items: entries,
		Total: len(entries),
		Fresh: true,
	})
}

// SetupRecommendationRoutes registers recommendation routes
func SetupRecommendationRoutes(apiGroup *gin.RouterGroup, service *recommend.Service) {
	handler := NewRecommendationHandler(service)
	apiGroup.GET("/users/:userId/recommendations", handler.GetRecommendations)
	apiGroup.POST("/users/:userId/recommendations/refresh", handler.RefreshRecommendations)
}
