// Package safe implements the safe domain: a single persisted record that is
// either unlocked or locked with a key and a lock timestamp, mutated through
// pure transitions and exposed to the agent runtime as capabilities.
package safe

import (
	"fmt"
	"strings"
	"time"
)

// StorageKey is the fixed record key for the safe domain.
const StorageKey = "self-improvement-safe"

// Record is the persisted safe state. Key, LockedAt and IsLocked transition
// together; no intermediate state exists.
type Record struct {
	Key      *string    `json:"key,omitempty"`
	LockedAt *time.Time `json:"lockedAt,omitempty"`
	IsLocked bool       `json:"isLocked"`
}

// DefaultRecord is the unlocked state a fresh or unreadable store yields.
func DefaultRecord() Record {
	return Record{}
}

// Validate enforces the three-fields-together invariant.
func (r Record) Validate() error {
	hasKey := r.Key != nil && strings.TrimSpace(*r.Key) != ""
	hasTime := r.LockedAt != nil
	if r.IsLocked != hasKey || r.IsLocked != hasTime {
		return fmt.Errorf("safe: key, lockedAt and isLocked must transition together")
	}
	return nil
}
