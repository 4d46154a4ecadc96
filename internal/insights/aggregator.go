// Package insights recomputes longitudinal pattern summaries from a user's
// persisted mood and journal history. Summaries are pure functions of the
// stored records in the window: nothing is cached, every call re-derives.
package insights

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/serenelabs/serene/internal/inference"
	"github.com/serenelabs/serene/internal/models"
	"github.com/serenelabs/serene/internal/store"
)

// InsufficientDataSummary is returned when a window holds no history.
const InsufficientDataSummary = "Not enough mood or journal history in this period to detect patterns. Keep logging and check back soon."

const maxTopItems = 5

// PatternSummary is the derived aggregate for one user and window. It is
// never persisted; callers may cache it externally if they want to.
type PatternSummary struct {
	UserID            string   `json:"user_id"`
	SufficientData    bool     `json:"sufficient_data"`
	MoodLogCount      int      `json:"mood_log_count"`
	JournalEntryCount int      `json:"journal_entry_count"`
	AverageMoodScore  float64  `json:"average_mood_score"`
	Trajectory        string   `json:"trajectory,omitempty"`
	TopLabels         []string `json:"top_labels,omitempty"`
	TopFactors        []string `json:"top_factors,omitempty"`
	Themes            []string `json:"themes,omitempty"`
	Triggers          []string `json:"triggers,omitempty"`
	TrendSummary      string   `json:"trend_summary"`
}

// Aggregator computes weekly insights and pattern summaries.
type Aggregator struct {
	store      store.Store
	capability inference.Capability
	log        *zap.Logger
}

// NewAggregator builds an aggregator over the store and inference capability.
func NewAggregator(st store.Store, capability inference.Capability, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{store: st, capability: capability, log: log}
}

// WeeklyInsights derives the pattern summary for userID over the window.
// Empty history yields the insufficient-data summary, not an error. Theme
// extraction failures degrade to a stats-only summary: aggregation is not
// safety-critical.
func (a *Aggregator) WeeklyInsights(ctx context.Context, userID string, w store.Window) (PatternSummary, error) {
	var (
		logs    []models.MoodLog
		entries []models.JournalEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = a.store.MoodLogs(gctx, userID, w)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = a.store.JournalEntriesInWindow(gctx, userID, w)
		return err
	})
	if err := g.Wait(); err != nil {
		return PatternSummary{}, fmt.Errorf("insights: fetch history: %w", err)
	}

	if len(logs) == 0 && len(entries) == 0 {
		return insufficientData(userID), nil
	}

	summary := PatternSummary{
		UserID:            userID,
		SufficientData:    true,
		MoodLogCount:      len(logs),
		JournalEntryCount: len(entries),
		AverageMoodScore:  round1(averageScore(logs)),
		TopLabels:         topStrings(labelGroups(logs), maxTopItems),
		TopFactors:        topStrings(factorGroups(logs), maxTopItems),
	}
	if len(logs) > 0 {
		summary.Trajectory = trajectory(logs)
	}

	findings, err := a.detect(ctx, historyTexts(logs, entries))
	if err != nil {
		a.log.Warn("pattern detection degraded to stats only",
			zap.String("user_id", userID),
			zap.Error(err))
		summary.TrendSummary = statsOnlySummary(summary)
		return summary, nil
	}
	summary.Themes = findings.Themes
	summary.Triggers = findings.Triggers
	summary.TrendSummary = strings.TrimSpace(findings.TrendSummary)
	if summary.TrendSummary == "" {
		summary.TrendSummary = statsOnlySummary(summary)
	}
	return summary, nil
}

// DetectPatterns derives qualitative patterns from an explicit list of entry
// texts, without touching the store. An empty list yields the
// insufficient-data summary.
func (a *Aggregator) DetectPatterns(ctx context.Context, userID string, entries []string) (PatternSummary, error) {
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		if s := strings.TrimSpace(e); s != "" {
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return insufficientData(userID), nil
	}

	findings, err := a.detect(ctx, texts)
	if err != nil {
		return PatternSummary{}, err
	}
	return PatternSummary{
		UserID:            userID,
		SufficientData:    true,
		JournalEntryCount: len(texts),
		Themes:            findings.Themes,
		Triggers:          findings.Triggers,
		TrendSummary:      strings.TrimSpace(findings.TrendSummary),
	}, nil
}

// detect makes the single inference call over the concatenated entries.
func (a *Aggregator) detect(ctx context.Context, texts []string) (inference.PatternFindings, error) {
	var b strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&b, "Entry %d: %s\n\n", i+1, text)
	}
	out, err := a.capability.Invoke(ctx, inference.TaskPatternDetection, b.String())
	if err != nil {
		return inference.PatternFindings{}, err
	}
	var findings inference.PatternFindings
	if err := inference.DecodeModelJSON(out, &findings); err != nil {
		return inference.PatternFindings{}, inference.NewError(inference.TaskPatternDetection, inference.KindMalformed, err)
	}
	return findings, nil
}

func insufficientData(userID string) PatternSummary {
	return PatternSummary{
		UserID:       userID,
		TrendSummary: InsufficientDataSummary,
	}
}

func statsOnlySummary(s PatternSummary) string {
	if s.MoodLogCount == 0 {
		return fmt.Sprintf("%d journal entries in this period.", s.JournalEntryCount)
	}
	return fmt.Sprintf("Average mood %.1f across %d logs, trend %s.", s.AverageMoodScore, s.MoodLogCount, s.Trajectory)
}

// historyTexts flattens the window's records into entry texts, oldest first,
// for theme extraction. Mood logs contribute their context notes.
func historyTexts(logs []models.MoodLog, entries []models.JournalEntry) []string {
	out := make([]string, 0, len(logs)+len(entries))
	for _, entry := range entries {
		out = append(out, entry.Content)
	}
	for _, log := range logs {
		if strings.TrimSpace(log.Context) != "" {
			out = append(out, fmt.Sprintf("Mood %d/10: %s", log.MoodScore, log.Context))
		}
	}
	return out
}

func labelGroups(logs []models.MoodLog) [][]string {
	groups := make([][]string, 0, len(logs))
	for _, log := range logs {
		groups = append(groups, log.MoodLabels)
	}
	return groups
}

func factorGroups(logs []models.MoodLog) [][]string {
	groups := make([][]string, 0, len(logs))
	for _, log := range logs {
		groups = append(groups, log.Factors)
	}
	return groups
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
