package insights

import (
	"sort"
	"strings"

	"github.com/serenelabs/serene/internal/models"
)

// Trajectory labels for the mood-score trend over a window.
const (
	TrajectoryImproving = "improving"
	TrajectoryDeclining = "declining"
	TrajectoryStable    = "stable"
)

// trajectoryThreshold is the minimum average-score shift between the first
// and second half of the window that counts as a trend.
const trajectoryThreshold = 0.5

func averageScore(logs []models.MoodLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	sum := 0
	for _, log := range logs {
		sum += log.MoodScore
	}
	return float64(sum) / float64(len(logs))
}

// trajectory compares the first and second half of the (chronologically
// sorted) logs. Fewer than two logs cannot show a trend.
func trajectory(logs []models.MoodLog) string {
	if len(logs) < 2 {
		return TrajectoryStable
	}
	mid := len(logs) / 2
	early := averageScore(logs[:mid])
	late := averageScore(logs[mid:])
	switch {
	case late-early >= trajectoryThreshold:
		return TrajectoryImproving
	case early-late >= trajectoryThreshold:
		return TrajectoryDeclining
	default:
		return TrajectoryStable
	}
}

// topStrings returns the n most frequent values, case-folded, most frequent
// first with ties broken alphabetically for deterministic output.
func topStrings(groups [][]string, n int) []string {
	counts := make(map[string]int)
	for _, group := range groups {
		for _, v := range group {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "" {
				counts[v]++
			}
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
