package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/catalog"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/models"
)

// Request/Response DTOs

// CreateTrackRequest represents a request to add a track to the catalog
type CreateTrackRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Artist      string  `json:"artist" binding:"required"`
	AlbumName   *string `json:"album_name,omitempty"`
	TrackNumber *int    `json:"track_number,omitempty"`
	AudioPath   string  `json:"audio_path,omitempty"`
	ImagePath   string  `json:"image_path,omitempty"`
	IsCoverArt  bool    `json:"is_cover_art"`
}

// TrackListResponse represents a list of catalog tracks
type TrackListResponse struct {
	Items []*models.Track `json:"items"`
	Total int             `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TrackHandler handles catalog-related API requests
type TrackHandler struct {
	service *catalog.Service
}

// NewTrackHandler creates a new track handler instance
func NewTrackHandler(service *catalog.Service) *TrackHandler {
	return &TrackHandler{service: service}
}

// CreateTrack handles POST /api/tracks
func (h *TrackHandler) CreateTrack(c *gin.Context) {
	var req CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	var track *models.Track
	if req.IsCoverArt {
		track = models.NewCoverArt(req.Title, req.Artist, req.ImagePath)
	} else {
		track = models.NewTrack(req.Title, req.Artist, req.AudioPath)
		track.ImagePath = req.ImagePath
	}
	track.AlbumName = req.AlbumName
	track.TrackNumber = req.TrackNumber

	if err := h.service.AddTrack(c.Request.Context(), track); err != nil {
		logger.Log.Error().
			Err(err).
			Str("title", req.Title).
			Msg("Failed to create track")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "create_failed",
			Message: "Failed to create track",
		})
		return
	}

	c.JSON(http.StatusCreated, track)
}

// ListTracks handles GET /api/tracks
func (h *TrackHandler) ListTracks(c *gin.Context) {
	playableOnly := c.Query("playable") == "true"

	tracks, err := h.service.List(c.Request.Context(), playableOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list tracks",
		})
		return
	}

	c.JSON(http.StatusOK, TrackListResponse{
		Items: tracks,
		Total: len(tracks),
	})
}

// GetTrack handles GET /api/tracks/:id
func (h *TrackHandler) GetTrack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid track ID",
		})
		return
	}

	track, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if catalog.IsTrackNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Track not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get track",
		})
		return
	}

	c.JSON(http.StatusOK, track)
}

// GetAlbumTracks handles GET /api/albums/:name/tracks
func (h *TrackHandler) GetAlbumTracks(c *gin.Context) {
	albumName := c.Param("name")
	if albumName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_album",
			Message: "Album name is required",
		})
		return
	}

	tracks, err := h.service.GetByAlbum(c.Request.Context(), albumName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to get album tracks",
		})
		return
	}

	c.JSON(http.StatusOK, TrackListResponse{
		Items: tracks,
		Total: len(tracks),
	})
}

// RecordPlay handles POST /api/tracks/:id/play
func (h *TrackHandler) RecordPlay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid track ID",
		})
		return
	}

	if err := h.service.RecordPlay(c.Request.Context(), id); err != nil {
		if catalog.IsTrackNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Track not found",
			})
			return
		}
		if catalog.IsNotPlayable(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "not_playable",
				Message: "Cover art cannot be played",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "play_failed",
			Message: "Failed to record play",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetupTrackRoutes registers catalog routes
func SetupTrackRoutes(apiGroup *gin.RouterGroup, service *catalog.Service) {
	handler := NewTrackHandler(service)
	apiGroup.POST("/tracks", handler.CreateTrack)
	apiGroup.GET("/tracks", handler.ListTracks)
	apiGroup.GET("/tracks/:id", handler.GetTrack)
	apiGroup.POST("/tracks/:id/play", handler.RecordPlay)
	apiGroup.GET("/albums/:name/tracks", handler.GetAlbumTracks)
}
