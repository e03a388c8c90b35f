package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lovweb/transcript-studio/internal/infrastructure/http/middleware"
	"github.com/lovweb/transcript-studio/internal/usecase/auth"
	"github.com/lovweb/transcript-studio/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	authService       *auth.Service
	authHandler       *AuthHandler
	transcriptHandler *TranscriptHandler
	utteranceHandler  *UtteranceHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authService *auth.Service,
	authHandler *AuthHandler,
	transcriptHandler *TranscriptHandler,
	utteranceHandler *UtteranceHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		authService:       authService,
		authHandler:       authHandler,
		transcriptHandler: transcriptHandler,
		utteranceHandler:  utteranceHandler,
	}
}

// Setup configures all application routes. Everything under /v1 requires a
// valid session.
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	v1.Use(middleware.EchoAuth(rt.authService))

	rt.setupAuthRoutes(v1)
	rt.setupTranscriptRoutes(v1)
	rt.setupUtteranceRoutes(v1)
}

func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.GET("/me", rt.authHandler.Me)
	authGroup.POST("/logout", rt.authHandler.Logout)
}

func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcriptGroup := g.Group("/transcripts")

	transcriptGroup.POST("", rt.transcriptHandler.Upload)
	transcriptGroup.GET("", rt.transcriptHandler.List)
	transcriptGroup.GET("/:id", rt.transcriptHandler.Get)
	transcriptGroup.DELETE("/:id", rt.transcriptHandler.Delete)
	transcriptGroup.GET("/:id/export", rt.transcriptHandler.Export)
}

func (rt *Router) setupUtteranceRoutes(g *echo.Group) {
	utteranceGroup := g.Group("/utterances")

	utteranceGroup.PUT("/:id", rt.utteranceHandler.Update)
	utteranceGroup.POST("/relabel", rt.utteranceHandler.Relabel)
	utteranceGroup.POST("/merge", rt.utteranceHandler.Merge)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
