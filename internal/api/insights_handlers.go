package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenelabs/serene/internal/store"
)

func (s *Server) weeklyInsights(c *gin.Context) {
	summary, err := s.aggregator.WeeklyInsights(c.Request.Context(), userID(c), store.LastDays(windowDays(c)))
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type detectPatternsRequest struct {
	Entries []string `json:"entries"`
}

// detectPatterns runs qualitative pattern detection over caller-supplied
// texts. Unlike the weekly summary there is no stats fallback here, so an
// inference failure is surfaced.
func (s *Server) detectPatterns(c *gin.Context) {
	var req detectPatternsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	summary, err := s.aggregator.DetectPatterns(c.Request.Context(), userID(c), req.Entries)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
