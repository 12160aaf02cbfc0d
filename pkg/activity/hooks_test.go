package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-journey/pkg/activity"
)

func TestHooksNotifyNormalizes(t *testing.T) {
	capture := &activity.CaptureHook{}
	hooks := activity.Hooks{capture}

	err := hooks.Notify(context.Background(), activity.Entry{
		Domain: "  safe  ",
		Kind:   " safe_locked ",
		Title:  " Safe locked ",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(capture.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(capture.Entries))
	}
	entry := capture.Entries[0]
	if entry.Domain != "safe" || entry.Kind != "safe_locked" || entry.Title != "Safe locked" {
		t.Fatalf("expected trimmed fields, got %+v", entry)
	}
	if entry.OccurredAt.IsZero() {
		t.Fatal("expected a timestamp to be applied")
	}
}

func TestHooksNotifyShortCircuitsOnMissingFields(t *testing.T) {
	capture := &activity.CaptureHook{}
	hooks := activity.Hooks{capture}

	if err := hooks.Notify(context.Background(), activity.Entry{Title: "no kind"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := hooks.Notify(context.Background(), activity.Entry{Kind: "no_title"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(capture.Entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(capture.Entries))
	}
}

func TestHooksNotifyJoinsFailures(t *testing.T) {
	first := errors.New("first sink")
	second := errors.New("second sink")
	hooks := activity.Hooks{
		activity.HookFunc(func(ctx context.Context, entry activity.Entry) error { return first }),
		activity.HookFunc(func(ctx context.Context, entry activity.Entry) error { return second }),
	}

	err := hooks.Notify(context.Background(), activity.Entry{Kind: "k", Title: "t"})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both failures joined, got %v", err)
	}
}

func TestNormalizeEntryClonesMetadata(t *testing.T) {
	metadata := map[string]any{"duration": "30 seconds"}
	normalized := activity.NormalizeEntry(activity.Entry{
		Kind:     "k",
		Title:    "t",
		Metadata: metadata,
	})
	normalized.Metadata["duration"] = "changed"
	if metadata["duration"] != "30 seconds" {
		t.Fatal("normalization must not alias the caller's metadata")
	}
}

func TestEmitterAppliesDefaultDomain(t *testing.T) {
	capture := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true})

	if err := emitter.Emit(context.Background(), activity.Entry{
		Kind:       "safe_locked",
		Title:      "Safe locked",
		OccurredAt: time.Now(),
	}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Entries) != 1 || capture.Entries[0].Domain != "journey" {
		t.Fatalf("expected default domain applied, got %+v", capture.Entries)
	}
}

func TestEmitterDisabledDropsEntries(t *testing.T) {
	capture := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: false})

	if err := emitter.Emit(context.Background(), activity.Entry{Kind: "k", Title: "t"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Entries) != 0 {
		t.Fatal("disabled emitter must not notify hooks")
	}
	if emitter.Enabled() {
		t.Fatal("emitter must report disabled")
	}
}
