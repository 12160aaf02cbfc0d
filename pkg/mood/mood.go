// Package mood implements the mood domain: the persisted mood record the
// application's mood screen reads, with a small capability surface for the
// agent. Mood changes are not part of the activity/event emission policy.
package mood

import (
	"fmt"
	"time"
)

// StorageKey is the fixed record key for the mood domain.
const StorageKey = "self-improvement-mood"

// Moods enumerates the accepted mood values, best to worst.
var Moods = []string{"great", "good", "okay", "low", "bad"}

// HistoryEntry is one recorded mood change.
type HistoryEntry struct {
	Mood       string    `json:"mood"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Record is the persisted mood state.
type Record struct {
	Current   string         `json:"current"`
	UpdatedAt time.Time      `json:"updatedAt"`
	History   []HistoryEntry `json:"history"`
}

// DefaultRecord is the unset mood a fresh or unreadable store yields.
func DefaultRecord() Record {
	return Record{History: []HistoryEntry{}}
}

// Validate checks that every stored mood value is a known one.
func (r Record) Validate() error {
	if r.Current != "" && !knownMood(r.Current) {
		return fmt.Errorf("mood: unknown mood %q", r.Current)
	}
	for _, entry := range r.History {
		if !knownMood(entry.Mood) {
			return fmt.Errorf("mood: unknown mood %q in history", entry.Mood)
		}
	}
	return nil
}

func knownMood(value string) bool {
	for _, m := range Moods {
		if m == value {
			return true
		}
	}
	return false
}

// Set returns a copy of current with the mood replaced and the change
// appended to the history.
func Set(current Record, mood string, now time.Time) Record {
	next := current
	next.Current = mood
	next.UpdatedAt = now
	history := make([]HistoryEntry, len(current.History), len(current.History)+1)
	copy(history, current.History)
	next.History = append(history, HistoryEntry{Mood: mood, RecordedAt: now})
	return next
}
