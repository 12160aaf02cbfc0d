package safe

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-journey"
	"github.com/goliatone/go-journey/pkg/activity"
	"github.com/goliatone/go-journey/pkg/events"
)

// Lock computes the locked record for key. The key is trimmed; an empty key
// fails with ErrInvalidArgument. Locking an already-locked safe is an
// idempotent overwrite: key and timestamp are replaced without re-validating
// the current state.
func Lock(_ Record, key string, now time.Time) (Record, []journey.Effect, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return Record{}, nil, fmt.Errorf("%w: key must not be empty", journey.ErrInvalidArgument)
	}
	lockedAt := now
	next := Record{
		Key:      &trimmed,
		LockedAt: &lockedAt,
		IsLocked: true,
	}
	effects := []journey.Effect{
		journey.ActivityEffect{Entry: activity.Entry{
			Domain:      "safe",
			Kind:        "safe_locked",
			Title:       "Safe locked",
			Description: "The safe was locked.",
			Metadata:    map[string]any{"lockedAt": now.Format(time.RFC3339)},
			OccurredAt:  now,
		}},
		journey.EventEffect{Event: events.Event{
			Category:   "safe",
			Message:    "The safe has been locked",
			OccurredAt: now,
		}},
	}
	return next, effects, nil
}

// Unlock computes the unlocked record. An unlocked safe fails with
// ErrInvalidState. The elapsed lock duration rides along in the emitted
// effects; a missing lock timestamp counts as zero.
func Unlock(current Record, now time.Time) (Record, []journey.Effect, error) {
	if !current.IsLocked {
		return Record{}, nil, fmt.Errorf("%w: the safe is not locked", journey.ErrInvalidState)
	}
	var elapsed time.Duration
	if current.LockedAt != nil {
		elapsed = now.Sub(*current.LockedAt)
	}
	formatted := FormatDuration(elapsed)
	effects := []journey.Effect{
		journey.ActivityEffect{Entry: activity.Entry{
			Domain:      "safe",
			Kind:        "safe_unlocked",
			Title:       "Safe unlocked",
			Description: fmt.Sprintf("The safe was unlocked after %s.", formatted),
			Metadata:    map[string]any{"duration": formatted},
			OccurredAt:  now,
		}},
		journey.EventEffect{Event: events.Event{
			Category:   "safe",
			Message:    fmt.Sprintf("The safe has been unlocked after %s", formatted),
			OccurredAt: now,
		}},
	}
	return Record{}, effects, nil
}
