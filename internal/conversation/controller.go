// Package conversation sequences the processing of each user utterance:
// safety gate first, always, then mood analysis and follow-up generation for
// cleared turns. Every utterance reaches exactly one terminal state.
package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/analysis"
	"github.com/serenelabs/serene/internal/models"
	"github.com/serenelabs/serene/internal/safety"
)

// State names a node of the per-turn state machine.
type State string

const (
	StateReceived         State = "received"
	StateRiskAssessing    State = "risk_assessing"
	StateCrisisResponding State = "crisis_responding"
	StateAssessmentFailed State = "assessment_failed"
	StateMoodAnalyzing    State = "mood_analyzing"
	StatePromptGenerating State = "prompt_generating"
	StateDelivered        State = "delivered"
)

// Terminal reports whether s ends a turn.
func (s State) Terminal() bool {
	switch s {
	case StateCrisisResponding, StateAssessmentFailed, StateDelivered:
		return true
	}
	return false
}

// assessmentFailedReply is shown when risk screening could not complete. It
// carries no analysis-derived content and mentions the lifeline passively:
// unknown risk is treated with caution, not alarm.
const assessmentFailedReply = `I'm sorry, I'm having trouble processing messages right now. Please try again in a moment.

If you're in distress, remember the 988 lifeline is always available.`

// Utterance is one inbound user message. Consumed exactly once.
type Utterance struct {
	SessionID string
	Text      string
	Timestamp time.Time
}

// TurnResult is the terminal outcome of one utterance.
type TurnResult struct {
	State    State                 `json:"state"`
	Trace    []State               `json:"-"`
	Risk     safety.RiskAssessment `json:"-"`
	Reply    string                `json:"reply"`
	Mood     analysis.MoodResult   `json:"mood,omitempty"`
	Followup string                `json:"followup,omitempty"`
}

// Auditor persists safety assessment traces. Best effort: failures are logged
// and never affect the turn.
type Auditor interface {
	CreateSafetyAudit(ctx context.Context, rec *models.SafetyAuditRecord) error
}

// Controller drives the turn state machine. Safe for concurrent use; turns
// within one session are serialized by the Session itself.
type Controller struct {
	gate     *safety.Gate
	pipeline *analysis.Pipeline
	auditor  Auditor
	log      *zap.Logger
}

// NewController wires the gate and pipeline. auditor may be nil.
func NewController(gate *safety.Gate, pipeline *analysis.Pipeline, auditor Auditor, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{gate: gate, pipeline: pipeline, auditor: auditor, log: log}
}

// HandleUtterance processes one turn for userID within sess. The risk
// assessment is a hard dependency of every later stage: nothing mood- or
// prompt-related runs until it completes or fails.
func (c *Controller) HandleUtterance(ctx context.Context, userID string, sess *Session, utt Utterance) TurnResult {
	sess.beginTurn()
	defer sess.endTurn()

	trace := []State{StateReceived, StateRiskAssessing}

	assessment, err := c.gate.Assess(ctx, utt.Text)
	if err != nil {
		c.log.Warn("risk assessment failed, failing closed",
			zap.String("session_id", utt.SessionID),
			zap.Error(err))
		trace = append(trace, StateAssessmentFailed)
		return TurnResult{
			State: StateAssessmentFailed,
			Trace: trace,
			Reply: assessmentFailedReply,
		}
	}
	c.audit(userID, assessment)

	if assessment.RequiresImmediateAction {
		trace = append(trace, StateCrisisResponding)
		reply := safety.Resources(assessment.Level) + "\n\n" + safety.GroundingPrompt(assessment.Level)
		// No mood or journal side effects from a crisis turn.
		return TurnResult{
			State: StateCrisisResponding,
			Trace: trace,
			Risk:  assessment,
			Reply: reply,
		}
	}

	trace = append(trace, StateMoodAnalyzing, StatePromptGenerating)
	result := c.pipeline.Analyze(ctx, utt.Text)
	sess.setLastMood(result.Mood.Label)

	// Low and none continue the pipeline normally; the resource payload is a
	// crisis response only.
	trace = append(trace, StateDelivered)
	return TurnResult{
		State:    StateDelivered,
		Trace:    trace,
		Risk:     assessment,
		Reply:    result.Followup,
		Mood:     result.Mood,
		Followup: result.Followup,
	}
}

// audit writes the assessment trace without blocking the turn. The write uses
// a detached context so session teardown cannot produce a partial turn.
func (c *Controller) audit(userID string, assessment safety.RiskAssessment) {
	if c.auditor == nil {
		return
	}
	rec := &models.SafetyAuditRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		RiskLevel: assessment.Level.String(),
		Rationale: strings.TrimSpace(assessment.Rationale),
		Timestamp: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.auditor.CreateSafetyAudit(ctx, rec); err != nil {
			c.log.Warn("safety audit write failed", zap.Error(err))
		}
	}()
}
