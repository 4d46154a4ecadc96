// Package api exposes the HTTP surface: auth, chat turns, mood logging,
// journaling, insights, and mindfulness. Handlers stay thin; all behavior
// lives in the domain packages.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/analysis"
	"github.com/serenelabs/serene/internal/auth"
	"github.com/serenelabs/serene/internal/conversation"
	"github.com/serenelabs/serene/internal/insights"
	"github.com/serenelabs/serene/internal/mindfulness"
	"github.com/serenelabs/serene/internal/store"
)

// Server holds the wired dependencies behind the HTTP surface.
type Server struct {
	store      store.Store
	tokens     *auth.Tokens
	controller *conversation.Controller
	sessions   *conversation.Sessions
	pipeline   *analysis.Pipeline
	aggregator *insights.Aggregator
	tracker    *mindfulness.Tracker
	log        *zap.Logger
}

// NewServer wires the handler dependencies.
func NewServer(st store.Store, tokens *auth.Tokens, controller *conversation.Controller,
	pipeline *analysis.Pipeline, aggregator *insights.Aggregator, tracker *mindfulness.Tracker,
	log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		store:      st,
		tokens:     tokens,
		controller: controller,
		sessions:   conversation.NewSessions(),
		pipeline:   pipeline,
		aggregator: aggregator,
		tracker:    tracker,
		log:        log,
	}
}

// Router builds the Gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/signup", s.signup)
	api.POST("/auth/login", s.login)

	authed := api.Group("", authenticate(s.tokens))
	{
		authed.POST("/chat/message", s.chatMessage)
		authed.DELETE("/chat/session/:id", s.endSession)

		authed.POST("/mood/analyze", s.analyzeMood)
		authed.POST("/mood/log", s.logMood)
		authed.GET("/mood/patterns", s.moodPatterns)

		authed.POST("/journal", s.createEntry)
		authed.GET("/journal", s.listEntries)
		authed.GET("/journal/prompt", s.journalPrompt)
		authed.GET("/journal/:id", s.getEntry)
		authed.PUT("/journal/:id", s.updateEntry)
		authed.DELETE("/journal/:id", s.deleteEntry)

		authed.GET("/insights/weekly", s.weeklyInsights)
		authed.POST("/insights/patterns", s.detectPatterns)

		authed.GET("/mindfulness/exercise", s.getExercise)
		authed.POST("/mindfulness/track", s.trackExercise)
		authed.GET("/mindfulness/statistics", s.exerciseStatistics)
	}
	return r
}
