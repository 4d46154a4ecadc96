package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/serenelabs/serene/internal/mindfulness"
	"github.com/serenelabs/serene/internal/models"
	"github.com/serenelabs/serene/internal/store"
)

// ActionState names a node of the explicit-action sub-flow, which runs
// orthogonally to utterance turns.
type ActionState string

const (
	ActionRequested        ActionState = "action_requested"
	ActionMoodFormPending  ActionState = "mood_form_pending"
	ActionMoodLogged       ActionState = "mood_logged"
	ActionExerciseRequest  ActionState = "exercise_requested"
	ActionExerciseDelivery ActionState = "exercise_delivered"
)

// MoodLogRequest is the explicit mood-logging form. SubmissionID, when set by
// the client, makes retries idempotent.
type MoodLogRequest struct {
	MoodScore    int      `json:"mood_score"`
	MoodLabels   []string `json:"mood_labels"`
	Context      string   `json:"context,omitempty"`
	Factors      []string `json:"factors,omitempty"`
	SubmissionID string   `json:"submission_id,omitempty"`
}

// MoodLogOutcome is the terminal result of the mood-logging action.
type MoodLogOutcome struct {
	State ActionState     `json:"state"`
	Log   *models.MoodLog `json:"log,omitempty"`
}

// LogMood runs the explicit mood-logging action: validate, persist, done.
// MoodLogs are only ever created here, by explicit user action; passive
// analysis merely proposes labels. Validation failures never reach the store.
func (c *Controller) LogMood(ctx context.Context, st store.Store, userID string, req MoodLogRequest) (MoodLogOutcome, error) {
	log := &models.MoodLog{
		ID:           uuid.NewString(),
		UserID:       userID,
		MoodScore:    req.MoodScore,
		MoodLabels:   req.MoodLabels,
		Context:      req.Context,
		Factors:      req.Factors,
		SubmissionID: req.SubmissionID,
		Timestamp:    time.Now().UTC(),
	}
	if err := log.Validate(); err != nil {
		return MoodLogOutcome{State: ActionMoodFormPending}, err
	}
	if err := st.CreateMoodLog(ctx, log); err != nil {
		// Surfaced to the caller as a failed write; no silent retry here,
		// clients retry with the same submission_id.
		return MoodLogOutcome{State: ActionMoodFormPending}, err
	}
	return MoodLogOutcome{State: ActionMoodLogged, Log: log}, nil
}

// ExerciseOutcome is the terminal result of an exercise request.
type ExerciseOutcome struct {
	State    ActionState          `json:"state"`
	Exercise mindfulness.Exercise `json:"exercise"`
	Guide    string               `json:"guide"`
}

// RequestExercise delivers a guided exercise. An empty exerciseType picks one
// suited to the session's last detected mood.
func (c *Controller) RequestExercise(_ context.Context, sess *Session, exerciseType string) (ExerciseOutcome, error) {
	if exerciseType == "" {
		exerciseType = mindfulness.RecommendFor(sess.LastMood()).Type
	}
	guide, err := mindfulness.Guide(exerciseType)
	if err != nil {
		return ExerciseOutcome{State: ActionExerciseRequest}, &models.ValidationError{Field: "exercise_type", Reason: err.Error()}
	}
	ex, _ := mindfulness.Lookup(exerciseType)
	return ExerciseOutcome{State: ActionExerciseDelivery, Exercise: ex, Guide: guide}, nil
}
