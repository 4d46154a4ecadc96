package models

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestMoodLogValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		log     MoodLog
		wantErr bool
	}{
		{"valid", MoodLog{UserID: "u1", MoodScore: 7}, false},
		{"score floor", MoodLog{UserID: "u1", MoodScore: 1}, false},
		{"score ceiling", MoodLog{UserID: "u1", MoodScore: 10}, false},
		{"score too high", MoodLog{UserID: "u1", MoodScore: 11}, true},
		{"score zero", MoodLog{UserID: "u1", MoodScore: 0}, true},
		{"missing user", MoodLog{MoodScore: 5}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.log.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate()=%v wantErr=%v", err, tc.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Fatalf("err=%v is not a ValidationError", err)
			}
		})
	}
}

func TestJournalEntryValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		entry   JournalEntry
		wantErr bool
	}{
		{"valid", JournalEntry{UserID: "u1", Content: "Today was hard"}, false},
		{"valid with score", JournalEntry{UserID: "u1", Content: "ok", MoodScore: intPtr(4)}, false},
		{"empty content", JournalEntry{UserID: "u1", Content: ""}, true},
		{"whitespace content", JournalEntry{UserID: "u1", Content: "  \n "}, true},
		{"score out of range", JournalEntry{UserID: "u1", Content: "x", MoodScore: intPtr(0)}, true},
		{"missing user", JournalEntry{Content: "x"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate()=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestMindfulnessSessionValidate(t *testing.T) {
	t.Parallel()

	ok := MindfulnessSession{UserID: "u1", ExerciseType: "breathing", DurationSec: 300}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	bad := MindfulnessSession{UserID: "u1", ExerciseType: "breathing", DurationSec: -1}
	if err := bad.Validate(); err == nil {
		t.Fatalf("negative duration accepted")
	}
}

func TestIsValidation(t *testing.T) {
	t.Parallel()

	if !IsValidation(&ValidationError{Field: "x", Reason: "y"}) {
		t.Fatalf("direct ValidationError not recognized")
	}
	if IsValidation(errors.New("other")) {
		t.Fatalf("plain error recognized as validation")
	}
}
