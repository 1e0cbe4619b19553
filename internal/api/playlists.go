package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/resonate-audio/resonate/internal/models"
	"github.com/resonate-audio/resonate/internal/playlist"
)

// Request/Response DTOs

// CreatePlaylistRequest represents a request to create a playlist
type CreatePlaylistRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// RenamePlaylistRequest represents a request to rename a playlist
type RenamePlaylistRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// MutatePlaylistResponse reports whether a rename/delete took effect.
// System-generated playlists refuse both without an error.
type MutatePlaylistResponse struct {
	Applied bool `json:"applied"`
}

// AddPlaylistTrackRequest represents a request to add a track to a playlist
type AddPlaylistTrackRequest struct {
	TrackID uuid.UUID `json:"track_id" binding:"required"`
}

// PlaylistListResponse represents a list of playlists
type PlaylistListResponse struct {
	Items []*models.Playlist `json:"items"`
	Total int                `json:"total"`
}

// LikedSongsResponse represents the synchronized Liked Songs playlist
type LikedSongsResponse struct {
	Playlist *models.Playlist `json:"playlist"`
	Added    int              `json:"added"`
	Removed  int              `json:"removed"`
	Skipped  int              `json:"skipped"`
}

// PlaylistHandler handles playlist-related API requests
type PlaylistHandler struct {
	service *playlist.Service
}

// NewPlaylistHandler creates a new playlist handler instance
func NewPlaylistHandler(service *playlist.Service) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// CreatePlaylist handles POST /api/users/:userId/playlists
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "create_failed",
			Message: "Failed to create playlist",
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListPlaylists handles GET /api/users/:userId/playlists
func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	playlists, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "list_failed",
			Message: "Failed to list playlists",
		})
		return
	}

	c.JSON(http.StatusOK, PlaylistListResponse{
		Items: playlists,
		Total: len(playlists),
	})
}

// GetPlaylist handles GET /api/playlists/:id
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid playlist ID",
		})
		return
	}

	found, err := h.service.GetWithTracks(c.Request.Context(), id)
	if err != nil {
		if playlist.IsPlaylistNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Playlist not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get playlist",
		})
		return
	}

	c.JSON(http.StatusOK, found)
}

// RenamePlaylist handles PATCH /api/playlists/:id
func (h *PlaylistHandler) RenamePlaylist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid playlist ID",
		})
		return
	}

	var req RenamePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	applied, err := h.service.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		if playlist.IsPlaylistNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Playlist not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "rename_failed",
			Message: "Failed to rename playlist",
		})
		return
	}

	c.JSON(http.StatusOK, MutatePlaylistResponse{Applied: applied})
}

// DeletePlaylist handles DELETE /api/playlists/:id
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid playlist ID",
		})
		return
	}

	applied, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if playlist.IsPlaylistNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Playlist not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "delete_failed",
			Message: "Failed to delete playlist",
		})
		return
	}

	c.JSON(http.StatusOK, MutatePlaylistResponse{Applied: applied})
}

// AddPlaylistTrack handles POST /api/playlists/:id/tracks
func (h *PlaylistHandler) AddPlaylistTrack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid playlist ID",
		})
		return
	}

	var req AddPlaylistTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "track_id is required",
		})
		return
	}

	membership, err := h.service.AddTrack(c.Request.Context(), id, req.TrackID)
	if err != nil {
		switch {
		case playlist.IsPlaylistNotFound(err):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Playlist not found",
			})
		case playlist.IsTrackNotFound(err):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "track_not_found",
				Message: "Track not found",
			})
		case playlist.IsSystemPlaylist(err):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "system_playlist",
				Message: "System-generated playlists cannot be edited directly",
			})
		case playlist.IsNotPlayable(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "not_playable",
				Message: "Cover art cannot be added to playlists",
			})
		case playlist.IsNoEntitlement(err):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "no_entitlement",
				Message: "Track is not owned and no active subscription covers it",
			})
		case playlist.IsAlreadyInPlaylist(err):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "already_in_playlist",
				Message: "Track is already in the playlist",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "add_failed",
				Message: "Failed to add track to playlist",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// RemovePlaylistTrack handles DELETE /api/playlists/:id/tracks/:trackId
func (h *PlaylistHandler) RemovePlaylistTrack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid playlist ID",
		})
		return
	}
	trackID, err := uuid.Parse(c.Param("trackId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_track_id",
			Message: "Invalid track ID",
		})
		return
	}

	if err := h.service.RemoveTrack(c.Request.Context(), id, trackID); err != nil {
		switch {
		case playlist.IsPlaylistNotFound(err):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Playlist not found",
			})
		case playlist.IsSystemPlaylist(err):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "system_playlist",
				Message: "System-generated playlists cannot be edited directly",
			})
		case playlist.IsTrackNotInPlaylist(err):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "track_not_in_playlist",
				Message: "Track is not in the playlist",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "remove_failed",
				Message: "Failed to remove track from playlist",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetLikedSongs handles GET /api/users/:userId/liked-songs.
// The playlist is created lazily and its membership synchronized against
// the user's current likes before it is returned.
func (h *PlaylistHandler) GetLikedSongs(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: "Invalid user ID",
		})
		return
	}

	result, err := h.service.SyncLikedSongs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "sync_failed",
			Message: "Failed to synchronize liked songs",
		})
		return
	}

	withTracks, err := h.service.GetWithTracks(c.Request.Context(), result.Playlist.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "get_failed",
			Message: "Failed to get liked songs playlist",
		})
		return
	}

	c.JSON(http.StatusOK, LikedSongsResponse{
		Playlist: withTracks,
		Added:    result.Added,
		Removed:  result.Removed,
		Skipped:  result.Skipped,
	})
}

// SetupPlaylistRoutes registers playlist routes
func SetupPlaylistRoutes(apiGroup *gin.RouterGroup, service *playlist.Service) {
	handler := NewPlaylistHandler(service)
	apiGroup.POST("/users/:userId/playlists", handler.CreatePlaylist)
	apiGroup.GET("/users/:userId/playlists", handler.ListPlaylists)
	apiGroup.GET("/users/:userId/liked-songs", handler.GetLikedSongs)
	apiGroup.GET("/playlists/:id", handler.GetPlaylist)
	apiGroup.PATCH("/playlists/:id", handler.RenamePlaylist)
	apiGroup.DELETE("/playlists/:id", handler.DeletePlaylist)
	apiGroup.POST("/playlists/:id/tracks", handler.AddPlaylistTrack)
	apiGroup.DELETE("/playlists/:id/tracks/:trackId", handler.RemovePlaylistTrack)
}
