package store

import (
	"context"
	"errors"
	"time"
)

var ErrETagMismatch = errors.New("store: etag mismatch")

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	ETag      string    `json:"etag,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Store loads/saves one snapshot for a single key.
type Store[T any] interface {
	Load(ctx context.Context, key string) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, key string, snapshot T, meta Meta) (Meta, error)
}

// Mutator applies an in-place change to a loaded snapshot.
type Mutator[T any] func(*T) error

// Logger receives storage warnings. *zap.SugaredLogger satisfies it.
type Logger interface {
	Warnf(template string, args ...any)
}

// NopLogger discards all warnings.
type NopLogger struct{}

func (NopLogger) Warnf(string, ...any) {}
