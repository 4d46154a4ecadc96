package safety

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnparsable reports that model output could not be mapped to a risk level.
// Callers must treat it as a failed assessment, never as "no risk".
var ErrUnparsable = errors.New("unparsable risk response")

// levelWords enumerates every accepted spelling of a level. Anything outside
// this table is rejected; the parser never guesses.
var levelWords = map[string]RiskLevel{
	"none":     LevelNone,
	"no risk":  LevelNone,
	"low":      LevelLow,
	"moderate": LevelModerate,
	"medium":   LevelModerate,
	"high":     LevelHigh,
	"severe":   LevelHigh,
}

// ParseRiskResponse parses the "<level>: <reasoning>" line the risk task is
// instructed to produce. Accepted variations: any casing, optional square
// brackets around either part, an optional "risk"/"risk level" prefix, and
// "-" as the separator. The reasoning part may be empty.
func ParseRiskResponse(output string) (RiskLevel, string, error) {
	s := strings.TrimSpace(output)
	if s == "" {
		return LevelNone, "", fmt.Errorf("%w: empty output", ErrUnparsable)
	}
	head, rationale := splitHead(s)
	if isLevelPrefix(head) {
		// "risk level: moderate: ...": the level follows the prefix.
		head, rationale = splitHead(strings.TrimSpace(rationale))
	}
	level, ok := matchLevel(head)
	if !ok {
		return LevelNone, "", fmt.Errorf("%w: %q", ErrUnparsable, truncate(output, 120))
	}
	return level, strings.TrimSpace(rationale), nil
}

func isLevelPrefix(head string) bool {
	h := strings.Trim(strings.ToLower(strings.TrimSpace(head)), "[]*_ \t")
	switch h {
	case "risk", "risk level", "risk_level", "risk assessment":
		return true
	}
	return false
}

func splitHead(s string) (head, rest string) {
	for _, sep := range []string{":", " - ", "\n"} {
		if i := strings.Index(s, sep); i > 0 {
			return s[:i], s[i+len(sep):]
		}
	}
	// A bare level word with no reasoning is still accepted.
	return s, ""
}

func matchLevel(head string) (RiskLevel, bool) {
	h := strings.ToLower(strings.TrimSpace(head))
	h = strings.Trim(h, "[]*_ \t")
	for _, prefix := range []string{"risk level", "risk_level", "risk assessment", "risk"} {
		if strings.HasPrefix(h, prefix) {
			h = strings.TrimSpace(strings.TrimPrefix(h, prefix))
			h = strings.TrimLeft(h, ":=- \t")
			break
		}
	}
	h = strings.Trim(h, "[]*_ \t")
	level, ok := levelWords[h]
	return level, ok
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
