// Package store is the document-store boundary. Records are partitioned by
// user_id; each record type has exactly one writer path, so no coordination
// beyond the store's own per-record atomicity is needed.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/serenelabs/serene/internal/models"
)

// ErrNotFound reports a missing record or a record owned by another user.
var ErrNotFound = errors.New("store: not found")

// Window bounds a history query. Zero From/To means unbounded on that side.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	if !w.From.IsZero() && ts.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !ts.Before(w.To) {
		return false
	}
	return true
}

// LastDays returns a window covering the n days up to now.
func LastDays(n int) Window {
	now := time.Now().UTC()
	return Window{From: now.AddDate(0, 0, -n), To: now}
}

// JournalEntryUpdate carries the mutable fields of a journal entry. Nil
// fields are left unchanged.
type JournalEntryUpdate struct {
	Content        *string
	MoodIndicators []string
	MoodScore      *int
}

// Store is the narrow read/write interface the pipeline consumes. Writes are
// all-or-nothing per record. Creates carrying a SubmissionID are idempotent:
// a retry with the same (user_id, submission_id) pair replaces rather than
// duplicates.
type Store interface {
	CreateMoodLog(ctx context.Context, log *models.MoodLog) error
	MoodLogs(ctx context.Context, userID string, w Window) ([]models.MoodLog, error)

	CreateJournalEntry(ctx context.Context, entry *models.JournalEntry) error
	JournalEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error)
	JournalEntries(ctx context.Context, userID string, skip, limit int) ([]models.JournalEntry, error)
	JournalEntriesInWindow(ctx context.Context, userID string, w Window) ([]models.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, userID, entryID string, update JournalEntryUpdate) (*models.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, userID, entryID string) error

	CreateMindfulnessSession(ctx context.Context, session *models.MindfulnessSession) error
	MindfulnessSessions(ctx context.Context, userID string) ([]models.MindfulnessSession, error)

	CreateSafetyAudit(ctx context.Context, rec *models.SafetyAuditRecord) error

	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
}
