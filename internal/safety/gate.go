package safety

import (
	"context"

	"github.com/serenelabs/serene/internal/inference"
)

// Gate screens utterances for crisis risk. It must run to completion before
// any other analysis of the same utterance; callers enforce that ordering.
type Gate struct {
	capability inference.Capability
}

// NewGate wraps the inference capability as a safety gate.
func NewGate(capability inference.Capability) *Gate {
	return &Gate{capability: capability}
}

// Assess classifies the risk in text. It fails closed: on inference failure
// or unparsable output the error is returned as-is and the zero assessment
// must not be used; there is no silent downgrade to "none".
func (g *Gate) Assess(ctx context.Context, text string) (RiskAssessment, error) {
	out, err := g.capability.Invoke(ctx, inference.TaskRiskAssessment, text)
	if err != nil {
		return RiskAssessment{}, err
	}
	level, rationale, err := ParseRiskResponse(out)
	if err != nil {
		return RiskAssessment{}, inference.NewError(inference.TaskRiskAssessment, inference.KindMalformed, err)
	}
	return NewAssessment(level, rationale), nil
}
