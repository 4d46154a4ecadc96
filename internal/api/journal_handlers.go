package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/analysis"
	"github.com/serenelabs/serene/internal/models"
	"github.com/serenelabs/serene/internal/store"
)

type journalCreateRequest struct {
	Content        string   `json:"content"`
	MoodIndicators []string `json:"mood_indicators"`
	MoodScore      *int     `json:"mood_score"`
	SubmissionID   string   `json:"submission_id"`
}

// createEntry persists a journal entry, attaching structured insights when
// the analysis stage cooperates. The entry is created either way; ai_insights
// stays null when analysis was unavailable.
func (s *Server) createEntry(c *gin.Context) {
	var req journalCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	ctx := c.Request.Context()
	entry := &models.JournalEntry{
		ID:             uuid.NewString(),
		UserID:         userID(c),
		Content:        req.Content,
		MoodIndicators: req.MoodIndicators,
		MoodScore:      req.MoodScore,
		SubmissionID:   req.SubmissionID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		respondFailure(c, err)
		return
	}

	aiInsights, err := s.pipeline.EntryInsights(ctx, entry.Content)
	if err != nil {
		s.log.Warn("entry insights degraded", zap.Error(err))
	}
	entry.AIInsights = aiInsights

	if err := s.store.CreateJournalEntry(ctx, entry); err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) listEntries(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	entries, err := s.store.JournalEntries(c.Request.Context(), userID(c), skip, limit)
	if err != nil {
		respondFailure(c, err)
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "skip": skip, "limit": limit})
}

func (s *Server) getEntry(c *gin.Context) {
	entry, err := s.store.JournalEntry(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

type journalUpdateRequest struct {
	Content        *string  `json:"content"`
	MoodIndicators []string `json:"mood_indicators"`
	MoodScore      *int     `json:"mood_score"`
}

func (s *Server) updateEntry(c *gin.Context) {
	var req journalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	if req.Content != nil && *req.Content == "" {
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, "content must not be empty")
		return
	}
	if req.MoodScore != nil && (*req.MoodScore < 1 || *req.MoodScore > 10) {
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, "mood_score must be between 1 and 10")
		return
	}
	entry, err := s.store.UpdateJournalEntry(c.Request.Context(), userID(c), c.Param("id"), store.JournalEntryUpdate{
		Content:        req.Content,
		MoodIndicators: req.MoodIndicators,
		MoodScore:      req.MoodScore,
	})
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) deleteEntry(c *gin.Context) {
	if err := s.store.DeleteJournalEntry(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// journalPrompt returns a journaling prompt for the mood in ?mood=. A failed
// generation degrades to the generic prompt.
func (s *Server) journalPrompt(c *gin.Context) {
	mood := c.DefaultQuery("mood", analysis.UnknownMood)
	prompt, err := s.pipeline.GeneratePrompt(c.Request.Context(), mood)
	if err != nil || prompt == "" {
		if err != nil {
			s.log.Warn("prompt generation degraded", zap.Error(err))
		}
		prompt = analysis.GenericPrompt
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}
