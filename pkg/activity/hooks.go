package activity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Entry describes one activity-log line produced by a domain transition.
// Kinds are stringly-typed so call sites stay decoupled from sink vocabularies.
type Entry struct {
	Domain      string
	Kind        string
	Title       string
	Description string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// Hook receives normalized activity entries.
type Hook interface {
	Notify(ctx context.Context, entry Entry) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, entry Entry) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, entry Entry) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, entry)
}

// Hooks fans out entries to zero or more hooks.
type Hooks []Hook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify forwards the entry to all hooks, returning a joined error if any
// fail. It normalizes the entry and short-circuits when required fields are
// missing.
func (h Hooks) Notify(ctx context.Context, entry Entry) error {
	if len(h) == 0 {
		return nil
	}

	normalized := NormalizeEntry(entry)
	if normalized.Kind == "" || normalized.Title == "" {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// NormalizeEntry trims whitespace, clones metadata, and ensures a timestamp is
// present.
func NormalizeEntry(entry Entry) Entry {
	normalized := entry
	normalized.Domain = strings.TrimSpace(entry.Domain)
	normalized.Kind = strings.TrimSpace(entry.Kind)
	normalized.Title = strings.TrimSpace(entry.Title)
	normalized.Description = strings.TrimSpace(entry.Description)
	normalized.Metadata = cloneMap(entry.Metadata)
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
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
