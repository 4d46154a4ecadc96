package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/serenelabs/serene/internal/conversation"
)

type chatMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// sessionKey scopes session ids to their owner so one user can never attach
// to another user's session context.
func sessionKey(userID, sessionID string) string {
	return userID + ":" + sessionID
}

func (s *Server) chatMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, "message must not be empty")
		return
	}
	if req.SessionID == "" {
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, "session_id is required")
		return
	}

	uid := userID(c)
	sess := s.sessions.Get(sessionKey(uid, req.SessionID))
	result := s.controller.HandleUtterance(c.Request.Context(), uid, sess, conversation.Utterance{
		SessionID: req.SessionID,
		Text:      req.Message,
		Timestamp: time.Now().UTC(),
	})
	c.JSON(http.StatusOK, result)
}

func (s *Server) endSession(c *gin.Context) {
	s.sessions.End(sessionKey(userID(c), c.Param("id")))
	c.JSON(http.StatusOK, gin.H{"status": "session ended"})
}
