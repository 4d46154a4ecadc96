package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/serenelabs/serene/internal/models"
)

// MemoryStore is an in-process Store used by tests and the insights CLI
// dry-run mode. Semantics match MongoStore, including submission-id upserts.
type MemoryStore struct {
	mu          sync.RWMutex
	moodLogs    []models.MoodLog
	journal     []models.JournalEntry
	mindfulness []models.MindfulnessSession
	safetyAudit []models.SafetyAuditRecord
	users       map[string]models.User
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) CreateMoodLog(_ context.Context, log *models.MoodLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if log.SubmissionID != "" {
		for i := range s.moodLogs {
			if s.moodLogs[i].UserID == log.UserID && s.moodLogs[i].SubmissionID == log.SubmissionID {
				s.moodLogs[i] = *log
				return nil
			}
		}
	}
	s.moodLogs = append(s.moodLogs, *log)
	return nil
}

func (s *MemoryStore) MoodLogs(_ context.Context, userID string, w Window) ([]models.MoodLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MoodLog
	for _, log := range s.moodLogs {
		if log.UserID == userID && w.Contains(log.Timestamp) {
			out = append(out, log)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryStore) CreateJournalEntry(_ context.Context, entry *models.JournalEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.SubmissionID != "" {
		for i := range s.journal {
			if s.journal[i].UserID == entry.UserID && s.journal[i].SubmissionID == entry.SubmissionID {
				s.journal[i] = *entry
				return nil
			}
		}
	}
	s.journal = append(s.journal, *entry)
	return nil
}

func (s *MemoryStore) JournalEntry(_ context.Context, userID, entryID string) (*models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.journal {
		if entry.ID == entryID && entry.UserID == userID {
			e := entry
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) JournalEntries(_ context.Context, userID string, skip, limit int) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.JournalEntry
	for _, entry := range s.journal {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) JournalEntriesInWindow(_ context.Context, userID string, w Window) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.JournalEntry
	for _, entry := range s.journal {
		if entry.UserID == userID && w.Contains(entry.CreatedAt) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateJournalEntry(_ context.Context, userID, entryID string, update JournalEntryUpdate) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.journal {
		if s.journal[i].ID != entryID || s.journal[i].UserID != userID {
			continue
		}
		if update.Content != nil {
			s.journal[i].Content = *update.Content
		}
		if update.MoodIndicators != nil {
			s.journal[i].MoodIndicators = update.MoodIndicators
		}
		if update.MoodScore != nil {
			score := *update.MoodScore
			s.journal[i].MoodScore = &score
		}
		now := time.Now().UTC()
		s.journal[i].UpdatedAt = &now
		e := s.journal[i]
		return &e, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteJournalEntry(_ context.Context, userID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.journal {
		if s.journal[i].ID == entryID && s.journal[i].UserID == userID {
			s.journal = append(s.journal[:i], s.journal[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) CreateMindfulnessSession(_ context.Context, session *models.MindfulnessSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mindfulness = append(s.mindfulness, *session)
	return nil
}

func (s *MemoryStore) MindfulnessSessions(_ context.Context, userID string) ([]models.MindfulnessSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MindfulnessSession
	for _, session := range s.mindfulness {
		if session.UserID == userID {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryStore) CreateSafetyAudit(_ context.Context, rec *models.SafetyAuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.safetyAudit = append(s.safetyAudit, *rec)
	return nil
}

// SafetyAudits returns the audit trail for a user. Test-observability helper;
// the Mongo store exposes no read path because nothing in the product reads
// audits back.
func (s *MemoryStore) SafetyAudits(userID string) []models.SafetyAuditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SafetyAuditRecord
	for _, rec := range s.safetyAudit {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}
