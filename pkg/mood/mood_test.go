package mood_test

import (
	"context"
	"errors"
	"testing"
	"time"

	journey "github.com/goliatone/go-journey"
	"github.com/goliatone/go-journey/pkg/mood"
	"github.com/goliatone/go-journey/pkg/store"
)

func newMoodRegistry(t *testing.T, now time.Time) (*journey.Registry, *store.Domain[mood.Record]) {
	t.Helper()
	domain := store.NewDomain(store.NewMemoryStore[mood.Record](), mood.StorageKey, mood.DefaultRecord)
	service := mood.NewService(domain, mood.WithClock(func() time.Time { return now }))
	registry := journey.NewRegistry()
	registry.MustRegister(service.Capabilities()...)
	return registry, domain
}

func TestSetAppendsHistory(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	record := mood.Set(mood.DefaultRecord(), "good", now)
	record = mood.Set(record, "great", now.Add(time.Hour))

	if record.Current != "great" {
		t.Fatalf("unexpected current mood %q", record.Current)
	}
	if len(record.History) != 2 {
		t.Fatalf("expected two history entries, got %d", len(record.History))
	}
	if record.History[0].Mood != "good" || record.History[1].Mood != "great" {
		t.Fatalf("unexpected history %+v", record.History)
	}
	if !record.UpdatedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected updatedAt %v", record.UpdatedAt)
	}
}

func TestValidateRejectsUnknownMood(t *testing.T) {
	record := mood.Record{Current: "ecstatic"}
	if err := record.Validate(); err == nil {
		t.Fatal("expected unknown mood to fail validation")
	}
	record = mood.Record{History: []mood.HistoryEntry{{Mood: "meh"}}}
	if err := record.Validate(); err == nil {
		t.Fatal("expected unknown history mood to fail validation")
	}
}

func TestSetMoodCapability(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	registry, domain := newMoodRegistry(t, now)
	ctx := context.Background()

	result, err := registry.Invoke(ctx, "setMood", map[string]any{"mood": "okay"})
	if err != nil {
		t.Fatalf("setMood: %v", err)
	}
	if result.Text != "Mood set to okay." {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if current := domain.Current(ctx); current.Current != "okay" || len(current.History) != 1 {
		t.Fatalf("unexpected stored record %+v", current)
	}
}

func TestSetMoodRejectsUnknownValue(t *testing.T) {
	registry, domain := newMoodRegistry(t, time.Now())
	_, err := registry.Invoke(context.Background(), "setMood", map[string]any{"mood": "meh"})
	if !errors.Is(err, journey.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if current := domain.Current(context.Background()); current.Current != "" {
		t.Fatalf("rejected invocation must not persist, got %+v", current)
	}
}

func TestGetMoodTexts(t *testing.T) {
	registry, _ := newMoodRegistry(t, time.Now())
	ctx := context.Background()

	result, err := registry.Invoke(ctx, "getMood", nil)
	if err != nil {
		t.Fatalf("getMood: %v", err)
	}
	if result.Text != "No mood recorded yet." {
		t.Fatalf("unexpected text %q", result.Text)
	}

	if _, err := registry.Invoke(ctx, "setMood", map[string]any{"mood": "low"}); err != nil {
		t.Fatalf("setMood: %v", err)
	}
	result, err = registry.Invoke(ctx, "getMood", nil)
	if err != nil {
		t.Fatalf("getMood: %v", err)
	}
	if result.Text != "Current mood: low." {
		t.Fatalf("unexpected text %q", result.Text)
	}
}
