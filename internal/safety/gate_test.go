package safety

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/serenelabs/serene/internal/inference"
)

type fakeCapability struct {
	output string
	err    error
	calls  []inference.Task
}

func (f *fakeCapability) Invoke(_ context.Context, task inference.Task, _ string) (string, error) {
	f.calls = append(f.calls, task)
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestGateAssess_ParsesModelOutput(t *testing.T) {
	t.Parallel()

	cap := &fakeCapability{output: "high: explicit ideation"}
	gate := NewGate(cap)

	a, err := gate.Assess(context.Background(), "I want to end it all")
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	if a.Level != LevelHigh || !a.RequiresImmediateAction {
		t.Fatalf("assessment=%+v", a)
	}
	if a.Rationale != "explicit ideation" {
		t.Fatalf("rationale=%q", a.Rationale)
	}
	if len(cap.calls) != 1 || cap.calls[0] != inference.TaskRiskAssessment {
		t.Fatalf("calls=%v", cap.calls)
	}
}

func TestGateAssess_FailsClosedOnInferenceError(t *testing.T) {
	t.Parallel()

	capErr := inference.NewError(inference.TaskRiskAssessment, inference.KindTimeout, context.DeadlineExceeded)
	gate := NewGate(&fakeCapability{err: capErr})

	_, err := gate.Assess(context.Background(), "hello")
	if !inference.IsTimeout(err) {
		t.Fatalf("err=%v, want timeout surfaced unchanged", err)
	}
}

func TestGateAssess_FailsClosedOnUnparsableOutput(t *testing.T) {
	t.Parallel()

	gate := NewGate(&fakeCapability{output: "I think the user is probably fine."})

	_, err := gate.Assess(context.Background(), "hello")
	if !inference.IsMalformed(err) {
		t.Fatalf("err=%v, want malformed-output classification", err)
	}
	if !errors.Is(err, ErrUnparsable) {
		t.Fatalf("err=%v, want ErrUnparsable in chain", err)
	}
}

func TestResources_Tiers(t *testing.T) {
	t.Parallel()

	high := Resources(LevelHigh)
	moderate := Resources(LevelModerate)
	for _, contact := range []string{"988", "741741"} {
		if !strings.Contains(high, contact) {
			t.Errorf("high tier missing %s", contact)
		}
		if !strings.Contains(moderate, contact) {
			t.Errorf("moderate tier missing %s", contact)
		}
	}
	if !strings.Contains(high, "911") {
		t.Errorf("high tier missing immediate-danger guidance")
	}
	if strings.Contains(moderate, "911") {
		t.Errorf("moderate tier should not carry immediate-danger guidance")
	}
	for _, level := range []RiskLevel{LevelNone, LevelLow} {
		if Resources(level) != "" {
			t.Errorf("level %v must have no payload", level)
		}
	}
}

func TestGroundingPrompt_AlwaysNonEmpty(t *testing.T) {
	t.Parallel()

	for _, level := range []RiskLevel{LevelNone, LevelLow, LevelModerate, LevelHigh} {
		if GroundingPrompt(level) == "" {
			t.Errorf("level %v: empty grounding prompt", level)
		}
	}
}
