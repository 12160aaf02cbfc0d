package store

import (
	"context"
	"sync"
)

// MemoryStore is a minimal in-memory Store implementation intended for tests
// and examples. It makes no persistence assumptions beyond keyed snapshots.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]memoryRecord[T]
}

type memoryRecord[T any] struct {
	snapshot T
	meta     Meta
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: map[string]memoryRecord[T]{}}
}

func (s *MemoryStore[T]) Load(_ context.Context, key string) (T, Meta, bool, error) {
	var zero T
	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return zero, Meta{}, false, nil
	}
	return record.snapshot, record.meta, true, nil
}

func (s *MemoryStore[T]) Save(_ context.Context, key string, snapshot T, meta Meta) (Meta, error) {
	s.mu.Lock()
	s.records[key] = memoryRecord[T]{snapshot: snapshot, meta: meta}
	s.mu.Unlock()
	return meta, nil
}
