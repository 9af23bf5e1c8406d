package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campaign-scribe/campaign-scribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	campaignHandler  *Campaign
	sessionHandler   *Session
	recordingHandler *Recording
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, campaignHandler *Campaign, sessionHandler *Session, recordingHandler *Recording) *Router {
	return &Router{
		cfg:              cfg,
		campaignHandler:  campaignHandler,
		sessionHandler:   sessionHandler,
		recordingHandler: recordingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupCampaignRoutes(v1)
	rt.setupSessionRoutes(v1)
	rt.setupRecordingRoutes(v1)
}

// setupCampaignRoutes configures campaign, player and character routes
func (rt *Router) setupCampaignRoutes(g *echo.Group) {
	campaigns := g.Group("/campaigns")
	campaigns.POST("", rt.campaignHandler.Create)
	campaigns.GET("", rt.campaignHandler.List)
	campaigns.GET("/:id", rt.campaignHandler.Get)
	campaigns.PATCH("/:id", rt.campaignHandler.Update)
	campaigns.DELETE("/:id", rt.campaignHandler.Delete)
	campaigns.GET("/:id/sessions", rt.sessionHandler.ListByCampaign)

	players := g.Group("/players")
	players.POST("", rt.campaignHandler.CreatePlayer)
	players.GET("", rt.campaignHandler.ListPlayers)
	players.GET("/:id", rt.campaignHandler.GetPlayer)
	players.GET("/:id/characters", rt.campaignHandler.ListCharacters)

	characters := g.Group("/characters")
	characters.POST("", rt.campaignHandler.CreateCharacter)
}

// setupSessionRoutes configures session and session speaker routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessions := g.Group("/sessions")
	sessions.POST("", rt.sessionHandler.Create)
	sessions.GET("/:id", rt.sessionHandler.Get)
	sessions.PATCH("/:id", rt.sessionHandler.Update)
	sessions.DELETE("/:id", rt.sessionHandler.Delete)

	sessions.GET("/:id/speakers", rt.sessionHandler.Speakers)
	sessions.PUT("/:id/speakers", rt.sessionHandler.AssignSpeaker)
	sessions.PUT("/:id/speakers/:speakerId", rt.sessionHandler.UpdateSpeaker)

	sessions.POST("/:id/summaries", rt.sessionHandler.GenerateSummary)
	sessions.GET("/:id/summaries", rt.sessionHandler.ListSummaries)

	sessions.POST("/:id/recordings", rt.recordingHandler.Upload)
	sessions.GET("/:id/recordings", rt.recordingHandler.ListBySession)
}

// setupRecordingRoutes configures recording and transcription routes
func (rt *Router) setupRecordingRoutes(g *echo.Group) {
	recordings := g.Group("/recordings")
	recordings.GET("/:id", rt.recordingHandler.Get)
	recordings.DELETE("/:id", rt.recordingHandler.Delete)
	recordings.POST("/:id/transcription", rt.recordingHandler.Transcribe)
	recordings.GET("/:id/transcription", rt.recordingHandler.GetTranscription)
	recordings.GET("/:id/conversation", rt.recordingHandler.Conversation)
	recordings.GET("/:id/audio", rt.recordingHandler.AudioURL)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
