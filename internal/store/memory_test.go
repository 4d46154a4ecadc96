package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serenelabs/serene/internal/models"
)

func TestMemoryStore_MoodLogWindow(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, score := range []int{3, 5, 8} {
		log := &models.MoodLog{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			MoodScore: score,
			Timestamp: base.AddDate(0, 0, i*3),
		}
		if err := s.CreateMoodLog(ctx, log); err != nil {
			t.Fatalf("CreateMoodLog: %v", err)
		}
	}
	// Another user's record must never leak into u1's partition.
	other := &models.MoodLog{ID: "z", UserID: "u2", MoodScore: 1, Timestamp: base}
	if err := s.CreateMoodLog(ctx, other); err != nil {
		t.Fatalf("CreateMoodLog: %v", err)
	}

	w := Window{From: base, To: base.AddDate(0, 0, 4)}
	logs, err := s.MoodLogs(ctx, "u1", w)
	if err != nil {
		t.Fatalf("MoodLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	if !logs[0].Timestamp.Before(logs[1].Timestamp) {
		t.Fatalf("logs not sorted ascending")
	}
}

func TestMemoryStore_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	err := s.CreateMoodLog(ctx, &models.MoodLog{ID: "m", UserID: "u1", MoodScore: 11})
	if !models.IsValidation(err) {
		t.Fatalf("err=%v want validation error", err)
	}
	logs, _ := s.MoodLogs(ctx, "u1", Window{})
	if len(logs) != 0 {
		t.Fatalf("invalid record was stored")
	}
}

func TestMemoryStore_SubmissionIDUpsert(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	first := &models.MoodLog{ID: "a", UserID: "u1", MoodScore: 4, SubmissionID: "sub-1", Timestamp: time.Now()}
	retry := &models.MoodLog{ID: "b", UserID: "u1", MoodScore: 4, SubmissionID: "sub-1", Timestamp: time.Now()}
	if err := s.CreateMoodLog(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateMoodLog(ctx, retry); err != nil {
		t.Fatalf("retry: %v", err)
	}
	logs, _ := s.MoodLogs(ctx, "u1", Window{})
	if len(logs) != 1 {
		t.Fatalf("retry duplicated the record: %d logs", len(logs))
	}
}

func TestMemoryStore_JournalCRUD(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	entry := &models.JournalEntry{ID: "e1", UserID: "u1", Content: "Today was hard", CreatedAt: time.Now()}
	if err := s.CreateJournalEntry(ctx, entry); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.JournalEntry(ctx, "u1", "e1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "Today was hard" {
		t.Fatalf("content=%q", got.Content)
	}

	// Ownership: the entry is invisible to another user.
	if _, err := s.JournalEntry(ctx, "u2", "e1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user get: err=%v want ErrNotFound", err)
	}

	newContent := "Today was hard, but it got better"
	updated, err := s.UpdateJournalEntry(ctx, "u1", "e1", JournalEntryUpdate{Content: &newContent})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != newContent || updated.UpdatedAt == nil {
		t.Fatalf("updated=%+v", updated)
	}

	if err := s.DeleteJournalEntry(ctx, "u1", "e1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.JournalEntry(ctx, "u1", "e1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: err=%v", err)
	}
}

func TestMemoryStore_JournalPaging(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := &models.JournalEntry{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			Content:   "entry",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.CreateJournalEntry(ctx, entry); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := s.JournalEntries(ctx, "u1", 1, 2)
	if err != nil {
		t.Fatalf("JournalEntries: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d entries", len(page))
	}
	// Newest first, so skip=1 starts at the second newest.
	if page[0].ID != "d" || page[1].ID != "c" {
		t.Fatalf("page=%v,%v", page[0].ID, page[1].ID)
	}

	empty, err := s.JournalEntries(ctx, "u1", 10, 2)
	if err != nil || len(empty) != 0 {
		t.Fatalf("over-skip: %v %v", empty, err)
	}
}

func TestWindowContains(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	w := Window{From: base, To: base.AddDate(0, 0, 7)}

	if !w.Contains(base) {
		t.Fatalf("From bound should be inclusive")
	}
	if w.Contains(base.AddDate(0, 0, 7)) {
		t.Fatalf("To bound should be exclusive")
	}
	if w.Contains(base.Add(-time.Second)) {
		t.Fatalf("before window")
	}
	if !(Window{}).Contains(base) {
		t.Fatalf("zero window should be unbounded")
	}
}
