package activity

import (
	"context"
	"sync"
)

// CaptureHook records entries for assertions in tests.
type CaptureHook struct {
	Entries []Entry
	Err     error
	mu      sync.Mutex
}

// Notify records the entry and returns any configured error.
func (h *CaptureHook) Notify(_ context.Context, entry Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Entries = append(h.Entries, NormalizeEntry(entry))
	return h.Err
}
