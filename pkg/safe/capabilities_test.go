package safe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	journey "github.com/goliatone/go-journey"
	"github.com/goliatone/go-journey/pkg/activity"
	"github.com/goliatone/go-journey/pkg/events"
	"github.com/goliatone/go-journey/pkg/safe"
	"github.com/goliatone/go-journey/pkg/store"
)

type safeFixture struct {
	registry *journey.Registry
	capture  *activity.CaptureHook
	events   *events.Capture
	clock    *time.Time
}

func newSafeFixture(t *testing.T) *safeFixture {
	t.Helper()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f := &safeFixture{
		capture: &activity.CaptureHook{},
		events:  &events.Capture{},
		clock:   &now,
	}
	dispatcher := journey.NewDispatcher(
		journey.WithActivityHooks(activity.Hooks{f.capture}),
		journey.WithEventBus(events.NewBus(f.events)),
	)
	domain := store.NewDomain(store.NewMemoryStore[safe.Record](), safe.StorageKey, safe.DefaultRecord)
	service := safe.NewService(domain, dispatcher, safe.WithClock(func() time.Time {
		return *f.clock
	}))
	f.registry = journey.NewRegistry()
	f.registry.MustRegister(service.Capabilities()...)
	return f
}

func (f *safeFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestCheckSafeLockNeverLocked(t *testing.T) {
	f := newSafeFixture(t)
	result, err := f.registry.Invoke(context.Background(), "checkSafeLock", nil)
	if err != nil {
		t.Fatalf("checkSafeLock: %v", err)
	}
	if result.Text != "The safe is not locked" {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if len(f.capture.Entries) != 0 || len(f.events.Events) != 0 {
		t.Fatal("reads must not emit activity or events")
	}
}

func TestLockSafeThenCheckLockReportsDuration(t *testing.T) {
	f := newSafeFixture(t)
	ctx := context.Background()

	if _, err := f.registry.Invoke(ctx, "lockSafe", map[string]any{"key": "my secret"}); err != nil {
		t.Fatalf("lockSafe: %v", err)
	}
	f.advance(90 * time.Second)

	result, err := f.registry.Invoke(ctx, "checkSafeLock", nil)
	if err != nil {
		t.Fatalf("checkSafeLock: %v", err)
	}
	if result.Text != "The safe has been locked for 1 minute, 30 seconds" {
		t.Fatalf("unexpected text %q", result.Text)
	}
}

func TestCheckSafeLockRecomputesEveryCall(t *testing.T) {
	f := newSafeFixture(t)
	ctx := context.Background()

	if _, err := f.registry.Invoke(ctx, "lockSafe", map[string]any{"key": "k"}); err != nil {
		t.Fatalf("lockSafe: %v", err)
	}

	f.advance(30 * time.Second)
	first, _ := f.registry.Invoke(ctx, "checkSafeLock", nil)
	f.advance(31 * time.Second)
	second, _ := f.registry.Invoke(ctx, "checkSafeLock", nil)

	if first.Text != "The safe has been locked for 30 seconds" {
		t.Fatalf("unexpected first text %q", first.Text)
	}
	if second.Text != "The safe has been locked for 1 minute, 1 second" {
		t.Fatalf("duration must be recomputed, got %q", second.Text)
	}
}

func TestCheckSafeLockWithoutTimestampReportsUnknownDuration(t *testing.T) {
	// A locked record missing its timestamp can only come from an external
	// writer; MemoryStore.Save accepts it verbatim so we can seed one.
	backing := store.NewMemoryStore[safe.Record]()
	key := "legacy"
	if _, err := backing.Save(context.Background(), safe.StorageKey, safe.Record{
		Key:      &key,
		IsLocked: true,
	}, store.Meta{}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	capture := &activity.CaptureHook{}
	dispatcher := journey.NewDispatcher(journey.WithActivityHooks(activity.Hooks{capture}))
	domain := store.NewDomain(backing, safe.StorageKey, safe.DefaultRecord)
	registry := journey.NewRegistry()
	registry.MustRegister(safe.NewService(domain, dispatcher).Capabilities()...)

	result, err := registry.Invoke(context.Background(), "checkSafeLock", nil)
	if err != nil {
		t.Fatalf("checkSafeLock: %v", err)
	}
	if result.Text != "The safe is locked, duration unknown" {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if len(capture.Entries) != 0 {
		t.Fatal("reads must not emit activity")
	}
}

func TestLockSafeRejectsBlankKeyBeforeHandler(t *testing.T) {
	f := newSafeFixture(t)
	_, err := f.registry.Invoke(context.Background(), "lockSafe", map[string]any{"key": "   "})
	if !errors.Is(err, journey.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if len(f.capture.Entries) != 0 {
		t.Fatal("rejected invocation must not emit")
	}

	result, err := f.registry.Invoke(context.Background(), "checkSafeLock", nil)
	if err != nil {
		t.Fatalf("checkSafeLock: %v", err)
	}
	if result.Text != "The safe is not locked" {
		t.Fatalf("record must be untouched after rejection, got %q", result.Text)
	}
}

func TestUnlockSafeOnUnlockedFails(t *testing.T) {
	f := newSafeFixture(t)
	_, err := f.registry.Invoke(context.Background(), "unlockSafe", nil)
	if !errors.Is(err, journey.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	var capErr *journey.CapabilityError
	if !errors.As(err, &capErr) || capErr.Capability != "unlockSafe" {
		t.Fatalf("expected capability error for unlockSafe, got %v", err)
	}
}

func TestLockUnlockEmitsActivityAndEvents(t *testing.T) {
	f := newSafeFixture(t)
	ctx := context.Background()

	if _, err := f.registry.Invoke(ctx, "lockSafe", map[string]any{"key": "k"}); err != nil {
		t.Fatalf("lockSafe: %v", err)
	}
	f.advance(time.Minute)
	result, err := f.registry.Invoke(ctx, "unlockSafe", nil)
	if err != nil {
		t.Fatalf("unlockSafe: %v", err)
	}
	if result.Text != "The safe is now unlocked. It was locked for 1 minute, 0 seconds." {
		t.Fatalf("unexpected text %q", result.Text)
	}

	if len(f.capture.Entries) != 2 {
		t.Fatalf("expected lock and unlock activity entries, got %d", len(f.capture.Entries))
	}
	if f.capture.Entries[0].Kind != "safe_locked" || f.capture.Entries[1].Kind != "safe_unlocked" {
		t.Fatalf("unexpected activity kinds %q, %q", f.capture.Entries[0].Kind, f.capture.Entries[1].Kind)
	}
	if len(f.events.Events) != 2 {
		t.Fatalf("expected two bus events, got %d", len(f.events.Events))
	}
	if f.events.Events[1].Message != "The safe has been unlocked after 1 minute, 0 seconds" {
		t.Fatalf("unexpected event message %q", f.events.Events[1].Message)
	}
}
