package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/serenelabs/serene/internal/inference"
)

// scriptedCapability returns a canned output (or error) per task and records
// the order of invocations.
type scriptedCapability struct {
	outputs map[inference.Task]string
	errs    map[inference.Task]error
	calls   []inference.Task
}

func (s *scriptedCapability) Invoke(_ context.Context, task inference.Task, _ string) (string, error) {
	s.calls = append(s.calls, task)
	if err, ok := s.errs[task]; ok {
		return "", err
	}
	return s.outputs[task], nil
}

func TestAnalyzeMood_SplitsLabelAndSummary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		out     string
		label   string
		summary string
	}{
		{"label only", "stressed", "stressed", ""},
		{"label with sentence", "anxious. The writer worries about deadlines.", "anxious", "The writer worries about deadlines."},
		{"capitalized", "Hopeful - looking forward to the trip", "hopeful", "looking forward to the trip"},
		{"trailing comma", "content,", "content", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cap := &scriptedCapability{outputs: map[inference.Task]string{inference.TaskMoodAnalysis: tc.out}}
			p := NewPipeline(cap, nil)
			mood, err := p.AnalyzeMood(context.Background(), "text")
			if err != nil {
				t.Fatalf("AnalyzeMood: %v", err)
			}
			if mood.Label != tc.label || mood.Summary != tc.summary {
				t.Fatalf("mood=%+v want label=%q summary=%q", mood, tc.label, tc.summary)
			}
		})
	}
}

func TestAnalyze_HappyPath(t *testing.T) {
	t.Parallel()

	cap := &scriptedCapability{outputs: map[inference.Task]string{
		inference.TaskMoodAnalysis:     "stressed. Work pressure is showing.",
		inference.TaskPromptGeneration: "What helped you cope with pressure today?",
	}}
	p := NewPipeline(cap, nil)

	a := p.Analyze(context.Background(), "Work was stressful but I'm managing")
	if a.Mood.Label != "stressed" {
		t.Fatalf("mood=%+v", a.Mood)
	}
	if a.Followup != "What helped you cope with pressure today?" {
		t.Fatalf("followup=%q", a.Followup)
	}
	// Prompt generation depends on the mood label, so it must come second.
	if len(cap.calls) != 2 || cap.calls[0] != inference.TaskMoodAnalysis || cap.calls[1] != inference.TaskPromptGeneration {
		t.Fatalf("calls=%v", cap.calls)
	}
}

func TestAnalyze_DegradesToUnknownMood(t *testing.T) {
	t.Parallel()

	cap := &scriptedCapability{
		outputs: map[inference.Task]string{inference.TaskPromptGeneration: "Write freely for five minutes."},
		errs: map[inference.Task]error{
			inference.TaskMoodAnalysis: inference.NewError(inference.TaskMoodAnalysis, inference.KindUnavailable, errors.New("503")),
		},
	}
	p := NewPipeline(cap, nil)

	a := p.Analyze(context.Background(), "hello")
	if a.Mood.Label != UnknownMood {
		t.Fatalf("mood=%+v want unknown", a.Mood)
	}
	if a.Followup != "Write freely for five minutes." {
		t.Fatalf("followup=%q, degraded mood must not abort prompt generation", a.Followup)
	}
}

func TestAnalyze_DegradesToGenericPrompt(t *testing.T) {
	t.Parallel()

	cap := &scriptedCapability{
		outputs: map[inference.Task]string{inference.TaskMoodAnalysis: "sad"},
		errs: map[inference.Task]error{
			inference.TaskPromptGeneration: inference.NewError(inference.TaskPromptGeneration, inference.KindTimeout, context.DeadlineExceeded),
		},
	}
	p := NewPipeline(cap, nil)

	a := p.Analyze(context.Background(), "hello")
	if a.Mood.Label != "sad" {
		t.Fatalf("mood=%+v", a.Mood)
	}
	if a.Followup != GenericPrompt {
		t.Fatalf("followup=%q want generic fallback", a.Followup)
	}
}

func TestAnalyze_BothStagesDown_StillDelivers(t *testing.T) {
	t.Parallel()

	down := inference.NewError(inference.TaskMoodAnalysis, inference.KindUnavailable, errors.New("down"))
	cap := &scriptedCapability{errs: map[inference.Task]error{
		inference.TaskMoodAnalysis:     down,
		inference.TaskPromptGeneration: down,
	}}
	p := NewPipeline(cap, nil)

	a := p.Analyze(context.Background(), "hello")
	if a.Mood.Label != UnknownMood || a.Followup != GenericPrompt {
		t.Fatalf("analysis=%+v", a)
	}
}

func TestEntryInsights(t *testing.T) {
	t.Parallel()

	cap := &scriptedCapability{outputs: map[inference.Task]string{
		inference.TaskEntryInsights: `{"themes":["work"],"emotions":["strain"],"observation":" You kept going anyway. "}`,
	}}
	p := NewPipeline(cap, nil)

	insights, err := p.EntryInsights(context.Background(), "Today was hard")
	if err != nil {
		t.Fatalf("EntryInsights: %v", err)
	}
	if len(insights.Themes) != 1 || insights.Observation != "You kept going anyway." {
		t.Fatalf("insights=%+v", insights)
	}
}

func TestEntryInsights_MalformedOutput(t *testing.T) {
	t.Parallel()

	cap := &scriptedCapability{outputs: map[inference.Task]string{
		inference.TaskEntryInsights: "not json at all",
	}}
	p := NewPipeline(cap, nil)

	insights, err := p.EntryInsights(context.Background(), "Today was hard")
	if insights != nil || !inference.IsMalformed(err) {
		t.Fatalf("insights=%v err=%v", insights, err)
	}
}
