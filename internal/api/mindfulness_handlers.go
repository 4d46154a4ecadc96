package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getExercise delivers a guided exercise. ?type= selects one explicitly;
// omitted, the choice follows the last mood seen in ?session_id='s session.
func (s *Server) getExercise(c *gin.Context) {
	uid := userID(c)
	sess := s.sessions.Get(sessionKey(uid, c.Query("session_id")))
	outcome, err := s.controller.RequestExercise(c.Request.Context(), sess, c.Query("type"))
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

type trackExerciseRequest struct {
	ExerciseType string `json:"exercise_type"`
	DurationSec  int    `json:"duration_sec"`
}

func (s *Server) trackExercise(c *gin.Context) {
	var req trackExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	session, err := s.tracker.Track(c.Request.Context(), userID(c), req.ExerciseType, req.DurationSec)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) exerciseStatistics(c *gin.Context) {
	stats, err := s.tracker.Stats(c.Request.Context(), userID(c))
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
