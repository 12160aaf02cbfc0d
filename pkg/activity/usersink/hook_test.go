package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-journey/pkg/activity"
	"github.com/goliatone/go-journey/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEntry(t *testing.T) {
	sink := &recordingSink{}
	owner := uuid.New()
	hook := usersink.Hook{Sink: sink, UserID: owner.String()}

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	entry := activity.Entry{
		Domain:      "safe",
		Kind:        "safe_locked",
		Title:       "Safe locked",
		Description: "locked with a new key",
		Metadata: map[string]any{
			"lockedAt": now.Format(time.RFC3339),
		},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), entry); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != owner || record.UserID != owner {
		t.Fatalf("expected owner %s on both ids, got %+v", owner, record)
	}
	if record.Verb != "safe_locked" || record.ObjectType != "safe" || record.ObjectID != "safe" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "self-improvement" {
		t.Fatalf("expected default channel, got %q", record.Channel)
	}
	if record.OccurredAt != now {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["title"] != "Safe locked" || record.Data["description"] != "locked with a new key" {
		t.Fatalf("expected title and description in data, got %v", record.Data)
	}
	if record.Data["lockedAt"] != now.Format(time.RFC3339) {
		t.Fatalf("expected metadata passthrough, got %v", record.Data["lockedAt"])
	}
}

func TestHookNotifySkipsIncompleteEntries(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Entry{Title: "no kind"})
	_ = hook.Notify(context.Background(), activity.Entry{Kind: "no_title"})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records, got %d", len(sink.records))
	}
}

func TestHookNotifyUnparseableUserID(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink, UserID: "not-a-uuid", Channel: "custom"}

	err := hook.Notify(context.Background(), activity.Entry{
		Domain: "",
		Kind:   "safe_unlocked",
		Title:  "Safe unlocked",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.UserID != uuid.Nil {
		t.Fatalf("expected nil uuid fallback, got %s", record.UserID)
	}
	if record.ObjectType != "journey" {
		t.Fatalf("expected domain fallback, got %q", record.ObjectType)
	}
	if record.Channel != "custom" {
		t.Fatalf("expected channel override, got %q", record.Channel)
	}
	if record.OccurredAt.IsZero() {
		t.Fatal("expected occurred_at to be defaulted")
	}
}
