package mindfulness

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/serenelabs/serene/internal/models"
	"github.com/serenelabs/serene/internal/store"
)

// Tracker records completed sessions and aggregates practice statistics.
type Tracker struct {
	store store.Store
}

// NewTracker builds a tracker over the document store.
func NewTracker(st store.Store) *Tracker {
	return &Tracker{store: st}
}

// Track persists one completed session. The exercise type must exist in the
// catalog.
func (t *Tracker) Track(ctx context.Context, userID, exerciseType string, durationSec int) (*models.MindfulnessSession, error) {
	ex, ok := Lookup(exerciseType)
	if !ok {
		return nil, &models.ValidationError{Field: "exercise_type", Reason: "is not a known exercise"}
	}
	if durationSec <= 0 {
		durationSec = ex.Duration
	}
	session := &models.MindfulnessSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		ExerciseType: ex.Type,
		DurationSec:  durationSec,
		Timestamp:    time.Now().UTC(),
	}
	if err := t.store.CreateMindfulnessSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ExerciseStats aggregates practice per exercise type.
type ExerciseStats struct {
	Count            int `json:"count"`
	TotalDurationSec int `json:"total_duration_sec"`
}

// Statistics summarizes a user's practice history.
type Statistics struct {
	TotalSessions int                      `json:"total_sessions"`
	Exercises     map[string]ExerciseStats `json:"exercises"`
}

// Stats computes practice statistics from the persisted sessions.
func (t *Tracker) Stats(ctx context.Context, userID string) (Statistics, error) {
	sessions, err := t.store.MindfulnessSessions(ctx, userID)
	if err != nil {
		return Statistics{}, err
	}
	stats := Statistics{
		TotalSessions: len(sessions),
		Exercises:     make(map[string]ExerciseStats),
	}
	for _, s := range sessions {
		es := stats.Exercises[s.ExerciseType]
		es.Count++
		es.TotalDurationSec += s.DurationSec
		stats.Exercises[s.ExerciseType] = es
	}
	return stats, nil
}
