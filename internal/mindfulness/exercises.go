// Package mindfulness holds the guided exercise catalog and session tracking.
package mindfulness

import (
	"fmt"
	"sort"
	"strings"
)

// Exercise is one guided mindfulness exercise.
type Exercise struct {
	Type     string   `json:"type"`
	Duration int      `json:"duration_sec"`
	Steps    []string `json:"steps"`
}

var catalog = map[string]Exercise{
	"breathing": {
		Type:     "breathing",
		Duration: 300,
		Steps: []string{
			"Find a comfortable position",
			"Close your eyes and take a deep breath",
			"Breathe in for 4 counts",
			"Hold for 4 counts",
			"Exhale for 4 counts",
			"Repeat the cycle",
		},
	},
	"body_scan": {
		Type:     "body_scan",
		Duration: 600,
		Steps: []string{
			"Lie down comfortably",
			"Focus attention on your feet",
			"Slowly move attention up through your body",
			"Notice any sensations without judgment",
			"Release any tension you find",
		},
	},
	"mindful_walking": {
		Type:     "mindful_walking",
		Duration: 900,
		Steps: []string{
			"Find a quiet space to walk",
			"Walk at a natural pace",
			"Notice the sensation of each step",
			"Focus on your breathing while walking",
			"Observe your surroundings mindfully",
		},
	},
}

// Lookup returns the exercise for a type name.
func Lookup(exerciseType string) (Exercise, bool) {
	ex, ok := catalog[strings.ToLower(strings.TrimSpace(exerciseType))]
	return ex, ok
}

// Types lists the available exercise types, sorted.
func Types() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Guide renders the step-by-step guidance text for an exercise type.
func Guide(exerciseType string) (string, error) {
	ex, ok := Lookup(exerciseType)
	if !ok {
		return "", fmt.Errorf("exercise type %q not found, available: %s", exerciseType, strings.Join(Types(), ", "))
	}
	lines := []string{
		fmt.Sprintf("Starting %s exercise", ex.Type),
		fmt.Sprintf("Duration: %d minutes", ex.Duration/60),
		"",
		"Follow these steps:",
	}
	for i, step := range ex.Steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return strings.Join(lines, "\n"), nil
}

// moodRecommendations maps detected moods to a suitable exercise. Unlisted or
// unknown moods get the breathing exercise as the lowest-commitment default.
var moodRecommendations = map[string]string{
	"anxious":     "breathing",
	"stressed":    "breathing",
	"overwhelmed": "breathing",
	"angry":       "breathing",
	"tense":       "body_scan",
	"tired":       "body_scan",
	"exhausted":   "body_scan",
	"restless":    "mindful_walking",
	"sad":         "mindful_walking",
	"stuck":       "mindful_walking",
}

// RecommendFor picks an exercise suited to a mood label.
func RecommendFor(mood string) Exercise {
	name, ok := moodRecommendations[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		name = "breathing"
	}
	return catalog[name]
}
