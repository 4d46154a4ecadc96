// Package analysis runs the post-clearance stages of a turn: mood
// classification and follow-up generation, plus journal entry insights.
// Nothing here is safety-critical, so failures degrade instead of aborting.
package analysis

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/inference"
	"github.com/serenelabs/serene/internal/models"
)

// UnknownMood is the label substituted when classification fails.
const UnknownMood = "unknown"

// GenericPrompt is delivered when prompt generation fails. Neutral enough to
// suit any mood.
const GenericPrompt = "Take a moment to write about whatever is on your mind right now. There's no wrong place to start."

// MoodResult is the derived emotional state for one utterance. Transient;
// persisted only if the user explicitly logs a mood.
type MoodResult struct {
	Label   string `json:"label"`
	Summary string `json:"summary,omitempty"`
}

// Analysis is the outcome of the full pipeline for one cleared utterance.
type Analysis struct {
	Mood     MoodResult `json:"mood"`
	Followup string     `json:"followup"`
}

// Pipeline orchestrates the non-safety analysis stages.
type Pipeline struct {
	capability inference.Capability
	log        *zap.Logger
}

// NewPipeline builds a pipeline over the inference capability.
func NewPipeline(capability inference.Capability, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{capability: capability, log: log}
}

// AnalyzeMood classifies the emotional state in text. The model answers with
// a leading mood label; anything after it is kept as a short summary.
func (p *Pipeline) AnalyzeMood(ctx context.Context, text string) (MoodResult, error) {
	out, err := p.capability.Invoke(ctx, inference.TaskMoodAnalysis, text)
	if err != nil {
		return MoodResult{}, err
	}
	label, summary := splitMoodResponse(out)
	if label == "" {
		return MoodResult{}, inference.NewError(inference.TaskMoodAnalysis, inference.KindMalformed, errMoodLabelMissing)
	}
	return MoodResult{Label: label, Summary: summary}, nil
}

// GeneratePrompt produces a journaling prompt or activity suggestion for the
// given mood. The mood may be empty or UnknownMood.
func (p *Pipeline) GeneratePrompt(ctx context.Context, mood string) (string, error) {
	if mood == "" {
		mood = UnknownMood
	}
	out, err := p.capability.Invoke(ctx, inference.TaskPromptGeneration, "Mood: "+mood)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Analyze runs both stages for a cleared utterance. It never fails the turn:
// a failed mood classification degrades to UnknownMood and a failed prompt
// degrades to the generic prompt, so a response is always delivered.
func (p *Pipeline) Analyze(ctx context.Context, text string) Analysis {
	mood, err := p.AnalyzeMood(ctx, text)
	if err != nil {
		p.log.Warn("mood classification degraded", zap.Error(err))
		mood = MoodResult{Label: UnknownMood}
	}

	followup, err := p.GeneratePrompt(ctx, mood.Label)
	if err != nil || followup == "" {
		if err != nil {
			p.log.Warn("prompt generation degraded", zap.Error(err))
		}
		followup = GenericPrompt
	}
	return Analysis{Mood: mood, Followup: followup}
}

// EntryInsights derives structured insights for a journal entry. A nil result
// with an error means the entry should still be created without insights.
func (p *Pipeline) EntryInsights(ctx context.Context, content string) (*models.EntryInsights, error) {
	out, err := p.capability.Invoke(ctx, inference.TaskEntryInsights, content)
	if err != nil {
		return nil, err
	}
	var findings inference.EntryFindings
	if err := inference.DecodeModelJSON(out, &findings); err != nil {
		return nil, inference.NewError(inference.TaskEntryInsights, inference.KindMalformed, err)
	}
	return &models.EntryInsights{
		Themes:      findings.Themes,
		Emotions:    findings.Emotions,
		Observation: strings.TrimSpace(findings.Observation),
	}, nil
}

var errMoodLabelMissing = errInvalidMood("no mood label in model output")

type errInvalidMood string

func (e errInvalidMood) Error() string { return string(e) }

// splitMoodResponse takes the first word as the mood label and the remainder
// as a summary. Labels are normalized to lowercase without punctuation.
func splitMoodResponse(out string) (label, summary string) {
	s := strings.TrimSpace(out)
	if s == "" {
		return "", ""
	}
	fields := strings.Fields(s)
	label = strings.ToLower(strings.Trim(fields[0], ".,;:!\"'()[]"))
	if label == "" {
		return "", ""
	}
	summary = strings.TrimSpace(strings.TrimPrefix(s, fields[0]))
	summary = strings.TrimLeft(summary, ".,;:- ")
	return label, summary
}
