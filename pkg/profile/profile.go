// Package profile implements the profile domain: a persisted record holding
// the user's title, description, and an ordered list of achievements, mutated
// through pure transitions and exposed as agent capabilities.
package profile

import (
	"fmt"
	"time"
)

// StorageKey is the fixed record key for the profile domain.
const StorageKey = "self-improvement-profile"

// Achievement is one entry in the profile's achievement list.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// Record is the persisted profile state. Achievements keep insertion order in
// storage; presentation re-sorts by date.
type Record struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Achievements []Achievement `json:"achievements"`
}

// DefaultRecord is the empty profile a fresh or unreadable store yields.
func DefaultRecord() Record {
	return Record{Achievements: []Achievement{}}
}

// Validate enforces achievement id uniqueness.
func (r Record) Validate() error {
	seen := make(map[string]struct{}, len(r.Achievements))
	for _, a := range r.Achievements {
		if a.ID == "" {
			return fmt.Errorf("profile: achievement id must not be empty")
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("profile: duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
