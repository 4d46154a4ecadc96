// Package models defines the persisted record shapes and their boundary
// validation. Invalid input is rejected here, before any pipeline stage runs.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidationError marks input rejected at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a boundary validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MoodLog is an explicit, user-submitted mood record. It is never created
// automatically from passive analysis; analysis only proposes a label.
type MoodLog struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	MoodScore    int       `bson:"mood_score" json:"mood_score"`
	MoodLabels   []string  `bson:"mood_labels" json:"mood_labels"`
	Context      string    `bson:"context,omitempty" json:"context,omitempty"`
	Factors      []string  `bson:"factors,omitempty" json:"factors,omitempty"`
	SubmissionID string    `bson:"submission_id,omitempty" json:"submission_id,omitempty"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
}

// Validate checks the record before it reaches the store.
func (m *MoodLog) Validate() error {
	if m.UserID == "" {
		return &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if m.MoodScore < 1 || m.MoodScore > 10 {
		return &ValidationError{Field: "mood_score", Reason: "must be between 1 and 10"}
	}
	return nil
}

// EntryInsights is the structured analysis attached to a journal entry at
// creation time. Nil when analysis was unavailable; the entry exists anyway.
type EntryInsights struct {
	Themes      []string `bson:"themes" json:"themes"`
	Emotions    []string `bson:"emotions" json:"emotions"`
	Observation string   `bson:"observation" json:"observation"`
}

// JournalEntry is a user-submitted journal record.
type JournalEntry struct {
	ID             string         `bson:"_id" json:"id"`
	UserID         string         `bson:"user_id" json:"user_id"`
	Content        string         `bson:"content" json:"content"`
	MoodIndicators []string       `bson:"mood_indicators" json:"mood_indicators"`
	MoodScore      *int           `bson:"mood_score,omitempty" json:"mood_score,omitempty"`
	AIInsights     *EntryInsights `bson:"ai_insights,omitempty" json:"ai_insights,omitempty"`
	SubmissionID   string         `bson:"submission_id,omitempty" json:"submission_id,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      *time.Time     `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Validate checks the record before it reaches the store.
func (e *JournalEntry) Validate() error {
	if e.UserID == "" {
		return &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if strings.TrimSpace(e.Content) == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if e.MoodScore != nil && (*e.MoodScore < 1 || *e.MoodScore > 10) {
		return &ValidationError{Field: "mood_score", Reason: "must be between 1 and 10"}
	}
	return nil
}

// MindfulnessSession records one completed guided exercise.
type MindfulnessSession struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	ExerciseType string    `bson:"exercise_type" json:"exercise_type"`
	DurationSec  int       `bson:"duration_sec" json:"duration_sec"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
}

// Validate checks the record before it reaches the store.
func (s *MindfulnessSession) Validate() error {
	if s.UserID == "" {
		return &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if s.ExerciseType == "" {
		return &ValidationError{Field: "exercise_type", Reason: "is required"}
	}
	if s.DurationSec < 0 {
		return &ValidationError{Field: "duration_sec", Reason: "must not be negative"}
	}
	return nil
}

// SafetyAuditRecord is a best-effort trace of a risk assessment. Writing it
// never blocks or fails a turn.
type SafetyAuditRecord struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	RiskLevel string    `bson:"risk_level" json:"risk_level"`
	Rationale string    `bson:"rationale" json:"rationale"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// User is an account record.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Validate checks the record before it reaches the store.
func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return &ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	if u.PasswordHash == "" {
		return &ValidationError{Field: "password", Reason: "is required"}
	}
	return nil
}
