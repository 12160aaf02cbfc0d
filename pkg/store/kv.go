package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-journey/internal/hydrate"
)

// KV abstracts raw byte storage keyed by record key. Backends only move
// bytes; encoding and concurrency control live in JSONStore.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// envelope is the persisted JSON shape: the record payload plus metadata.
type envelope struct {
	Record json.RawMessage `json:"record"`
	Meta   Meta            `json:"meta"`
}

// JSONStore persists records as JSON envelopes in a KV backend. Payloads are
// hydrated through a configurable decoder so callers can normalise legacy
// field names before the record type sees them.
type JSONStore[T any] struct {
	kv      KV
	decoder *hydrate.Decoder[T]
	now     func() time.Time
}

// JSONStoreOption configures a JSONStore.
type JSONStoreOption[T any] func(*JSONStore[T])

// JSONWithDecoder replaces the default payload decoder.
func JSONWithDecoder[T any](opts ...hydrate.DecoderOption[T]) JSONStoreOption[T] {
	return func(s *JSONStore[T]) {
		s.decoder = hydrate.NewDecoder(opts...)
	}
}

// JSONWithClock overrides the timestamp source. Intended for tests.
func JSONWithClock[T any](now func() time.Time) JSONStoreOption[T] {
	return func(s *JSONStore[T]) {
		if now != nil {
			s.now = now
		}
	}
}

// NewJSONStore constructs a JSON record store over kv.
func NewJSONStore[T any](kv KV, opts ...JSONStoreOption[T]) *JSONStore[T] {
	s := &JSONStore[T]{
		kv:      kv,
		decoder: hydrate.NewDecoder[T](),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load reads and hydrates the record stored under key. A malformed envelope
// or payload is an error; Domain turns that into a defaulted record.
func (s *JSONStore[T]) Load(ctx context.Context, key string) (T, Meta, bool, error) {
	var zero T
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return zero, Meta{}, false, fmt.Errorf("store: get %q: %w", key, err)
	}
	if !ok {
		return zero, Meta{}, false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, Meta{}, false, fmt.Errorf("store: envelope %q: %w", key, err)
	}

	payload := map[string]any{}
	if len(env.Record) > 0 {
		if err := json.Unmarshal(env.Record, &payload); err != nil {
			return zero, Meta{}, false, fmt.Errorf("store: record %q: %w", key, err)
		}
	}
	record, err := s.decoder.Decode(hydrate.Context{Key: key}, payload)
	if err != nil {
		return zero, Meta{}, false, err
	}
	return record, env.Meta, true, nil
}

// Save persists the record under key. When meta carries an ETag it must match
// the stored one; a mismatch means another writer got there first and returns
// ErrETagMismatch. The returned Meta carries the new content ETag.
func (s *JSONStore[T]) Save(ctx context.Context, key string, snapshot T, meta Meta) (Meta, error) {
	if meta.ETag != "" {
		_, current, ok, err := s.Load(ctx, key)
		if err == nil && ok && current.ETag != "" && current.ETag != meta.ETag {
			return Meta{}, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, current.ETag)
		}
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return Meta{}, fmt.Errorf("store: marshal %q: %w", key, err)
	}
	saved := Meta{
		ETag:      contentETag(payload),
		UpdatedAt: s.now(),
	}
	raw, err := json.Marshal(envelope{Record: payload, Meta: saved})
	if err != nil {
		return Meta{}, fmt.Errorf("store: envelope %q: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return Meta{}, fmt.Errorf("store: set %q: %w", key, err)
	}
	return saved, nil
}

func contentETag(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:12]
}
