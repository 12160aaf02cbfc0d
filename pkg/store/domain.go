package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Domain owns a single persisted record. It defaults the snapshot when
// storage is missing or corrupt, runs mutations under a mutex, validates the
// result, and saves with the loaded metadata so the backend can enforce its
// ETag precondition.
type Domain[T any] struct {
	store    Store[T]
	key      string
	defaults func() T
	logger   Logger

	mu sync.Mutex
}

// DomainOption configures a Domain.
type DomainOption[T any] func(*Domain[T])

// WithDomainLogger attaches a warning logger to the domain.
func WithDomainLogger[T any](logger Logger) DomainOption[T] {
	return func(d *Domain[T]) {
		if logger == nil {
			d.logger = NopLogger{}
			return
		}
		d.logger = logger
	}
}

// NewDomain constructs a domain over store for a single record key. defaults
// produces the fallback snapshot when storage has nothing usable.
func NewDomain[T any](store Store[T], key string, defaults func() T, opts ...DomainOption[T]) *Domain[T] {
	d := &Domain[T]{
		store:    store,
		key:      key,
		defaults: defaults,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Key returns the storage key this domain owns.
func (d *Domain[T]) Key() string {
	return d.key
}

// Current returns the persisted snapshot, falling back to the default when
// storage is missing, unreadable, or corrupt. Storage failures surface as
// warnings only.
func (d *Domain[T]) Current(ctx context.Context) T {
	snapshot, _ := d.load(ctx)
	return snapshot
}

// Update runs fn against the current snapshot and persists the result. The
// mutex serialises concurrent read-modify-write cycles; the loaded ETag rides
// along on Save so backends reject out-of-band writes.
//
// Mutator and validation failures abort the update and propagate. Save
// failures do not: the computed record is returned and the failure is logged,
// keeping domain outcomes independent of storage health.
func (d *Domain[T]) Update(ctx context.Context, fn Mutator[T]) (T, error) {
	var zero T
	if fn == nil {
		return zero, fmt.Errorf("store: mutator is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot, meta := d.load(ctx)
	if err := fn(&snapshot); err != nil {
		return zero, err
	}
	if err := validateValue(snapshot); err != nil {
		return zero, err
	}

	if _, err := d.store.Save(ctx, d.key, snapshot, meta); err != nil {
		d.warnf("store: save %q failed, returning computed record: %v", d.key, err)
	}
	return snapshot, nil
}

func (d *Domain[T]) load(ctx context.Context) (T, Meta) {
	snapshot, meta, ok, err := d.store.Load(ctx, d.key)
	if err != nil {
		d.warnf("store: load %q failed, using defaults: %v", d.key, err)
		return d.defaultValue(), Meta{}
	}
	if !ok {
		return d.defaultValue(), Meta{}
	}
	return snapshot, meta
}

func (d *Domain[T]) defaultValue() T {
	if d.defaults != nil {
		return d.defaults()
	}
	var zero T
	return zero
}

func (d *Domain[T]) warnf(template string, args ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Warnf(template, args...)
}

func validateValue[T any](value T) error {
	if v, ok := any(value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	if rv := reflect.ValueOf(&value); rv.Elem().Kind() != reflect.Pointer {
		if v, ok := rv.Interface().(interface{ Validate() error }); ok {
			return v.Validate()
		}
	}
	return nil
}
