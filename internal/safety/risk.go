// Package safety implements the crisis screening gate that runs ahead of all
// other analysis on every user utterance, plus the fixed crisis resource
// payloads delivered when screening demands it.
package safety

import "fmt"

// RiskLevel is the ordinal crisis severity classification.
type RiskLevel int

const (
	LevelNone RiskLevel = iota
	LevelLow
	LevelModerate
	LevelHigh
)

var levelNames = map[RiskLevel]string{
	LevelNone:     "none",
	LevelLow:      "low",
	LevelModerate: "moderate",
	LevelHigh:     "high",
}

func (l RiskLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("risklevel(%d)", int(l))
}

// RiskAssessment is the outcome of screening one utterance. It is transient:
// produced once per utterance and never persisted as-is.
type RiskAssessment struct {
	Level                   RiskLevel
	Rationale               string
	RequiresImmediateAction bool
}

// NewAssessment builds an assessment, deriving RequiresImmediateAction from
// the level. Moderate and high always require immediate action.
func NewAssessment(level RiskLevel, rationale string) RiskAssessment {
	return RiskAssessment{
		Level:                   level,
		Rationale:               rationale,
		RequiresImmediateAction: level >= LevelModerate,
	}
}
