// Package usersink bridges journey activity entries into a go-users
// ActivitySink so the application's existing user timeline keeps receiving
// safe lifecycle events.
package usersink

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-journey/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts activity entries to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink

	// UserID identifies the owning user; the application is single-user so a
	// single static identifier is sufficient.
	UserID string

	// Channel overrides the sink channel; defaults to "self-improvement".
	Channel string
}

// Notify maps the entry into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, entry activity.Entry) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEntry(entry)
	if normalized.Kind == "" || normalized.Title == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	objectType := normalized.Domain
	if objectType == "" {
		objectType = "journey"
	}
	channel := strings.TrimSpace(h.Channel)
	if channel == "" {
		channel = "self-improvement"
	}

	owner := parseUUID(h.UserID)
	record := usertypes.ActivityRecord{
		ActorID:    owner,
		UserID:     owner,
		Verb:       normalized.Kind,
		ObjectType: objectType,
		ObjectID:   objectType,
		Channel:    channel,
		Data:       cloneMap(normalized.Metadata),
		OccurredAt: normalized.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}
	if normalized.Description != "" {
		if record.Data == nil {
			record.Data = map[string]any{}
		}
		record.Data["description"] = normalized.Description
	}
	if normalized.Title != "" {
		if record.Data == nil {
			record.Data = map[string]any{}
		}
		record.Data["title"] = normalized.Title
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(input string) uuid.UUID {
	value := strings.TrimSpace(input)
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
