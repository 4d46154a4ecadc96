package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/analysis"
	"github.com/serenelabs/serene/internal/conversation"
	"github.com/serenelabs/serene/internal/store"
)

type analyzeMoodRequest struct {
	Message string `json:"message"`
}

// analyzeMood classifies mood without logging anything. Classification
// failure degrades to the unknown label rather than erroring; this endpoint
// feeds UI hints, not records.
func (s *Server) analyzeMood(c *gin.Context) {
	var req analyzeMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, "message must not be empty")
		return
	}
	mood, err := s.pipeline.AnalyzeMood(c.Request.Context(), req.Message)
	if err != nil {
		s.log.Warn("mood analysis degraded", zap.Error(err))
		mood = analysis.MoodResult{Label: analysis.UnknownMood}
	}
	c.JSON(http.StatusOK, gin.H{"mood": mood})
}

func (s *Server) logMood(c *gin.Context) {
	var req conversation.MoodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	outcome, err := s.controller.LogMood(c.Request.Context(), s.store, userID(c), req)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, outcome)
}

func (s *Server) moodPatterns(c *gin.Context) {
	summary, err := s.aggregator.WeeklyInsights(c.Request.Context(), userID(c), store.LastDays(windowDays(c)))
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// windowDays reads the ?days query parameter, defaulting to 7 and clamping
// to [1, 90].
func windowDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		return 7
	}
	if days > 90 {
		return 90
	}
	return days
}
