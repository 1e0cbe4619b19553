// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/resonate-audio/resonate/internal/api"
	"github.com/resonate-audio/resonate/internal/catalog"
	"github.com/resonate-audio/resonate/internal/config"
	"github.com/resonate-audio/resonate/internal/db"
	"github.com/resonate-audio/resonate/internal/entitlement"
	"github.com/resonate-audio/resonate/internal/logger"
	"github.com/resonate-audio/resonate/internal/middleware"
	"github.com/resonate-audio/resonate/internal/playlist"
	"github.com/resonate-audio/resonate/internal/preference"
	"github.com/resonate-audio/resonate/internal/recommend"
)

// Server represents the HTTP server
type Server struct {
	config             *config.Config
	db                 *db.DB
	repos              *db.Repositories
	catalogService     *catalog.Service
	preferenceService  *preference.Service
	entitlementService *entitlement.Service
	recommendService   *recommend.Service
	playlistService    *playlist.Service
	refresher          *recommend.Refresher
	router             *gin.Engine
	server             *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, database *db.DB) *Server {
	repos := db.NewRepositories(database)
	catalogService := catalog.NewService(repos)
	preferenceService := preference.NewService(repos)
	entitlementService := entitlement.NewService(repos)
	recommendService := recommend.NewService(repos, &cfg.Recommendations)
	playlistService := playlist.NewService(database, repos, entitlementService)
	refresher := recommend.NewRefresher(repos, recommendService, cfg.Recommendations.RefreshInterval)

	return &Server{
		config:             cfg,
		db:                 database,
		repos:              repos,
		catalogService:     catalogService,
		preferenceService:  preferenceService,
		entitlementService: entitlementService,
		recommendService:   recommendService,
		playlistService:    playlistService,
		refresher:          refresher,
	}
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	// Set Gin mode based on log level
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create new Gin router
	s.router = gin.New()

	// Add middleware stack
	s.router.Use(middleware.RequestLogger()) // Custom zerolog request logger
	s.router.Use(gin.Recovery())             // Panic recovery
	s.router.Use(cors.Default())             // CORS support (allows all origins)

	// Create API route group
	apiGroup := s.router.Group("/api")

	// Register service routes
	api.SetupHealthRoutes(apiGroup, s.db)
	api.SetupTrackRoutes(apiGroup, s.catalogService)
	api.SetupReactionRoutes(apiGroup, s.preferenceService)
	api.SetupPlaylistRoutes(apiGroup, s.playlistService)
	api.SetupRecommendationRoutes(apiGroup, s.recommendService)
	api.SetupStoreRoutes(apiGroup, s.entitlementService)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.setupRouter()

	// Start the background recommendation refresher
	s.refresher.Start()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	// Stop the refresher goroutine
	if s.refresher != nil {
		s.refresher.Stop()
	}

	// Check if server was started before attempting shutdown
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
