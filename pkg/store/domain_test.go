package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-journey/pkg/store"
	"github.com/google/go-cmp/cmp"
)

type domainStore[T any] struct {
	loadSnapshot T
	loadMeta     store.Meta
	loadOK       bool
	loadErr      error

	saveCalls  int
	savedKey   string
	savedMeta  store.Meta
	savedValue T
	saveErr    error
}

func (s *domainStore[T]) Load(_ context.Context, key string) (T, store.Meta, bool, error) {
	var zero T
	if s.loadErr != nil {
		return zero, store.Meta{}, false, s.loadErr
	}
	return s.loadSnapshot, s.loadMeta, s.loadOK, nil
}

func (s *domainStore[T]) Save(_ context.Context, key string, snapshot T, meta store.Meta) (store.Meta, error) {
	s.saveCalls++
	s.savedKey = key
	s.savedMeta = meta
	s.savedValue = snapshot
	if s.saveErr != nil {
		return store.Meta{}, s.saveErr
	}
	return meta, nil
}

type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Warnf(template string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(template, args...))
}

type validatingRecord struct {
	Name string
}

func (r validatingRecord) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestDomainCurrentDefaultsWhenMissing(t *testing.T) {
	backing := &domainStore[validatingRecord]{}
	domain := store.NewDomain[validatingRecord](backing, "record", func() validatingRecord {
		return validatingRecord{Name: "fresh"}
	})

	got := domain.Current(context.Background())
	if got.Name != "fresh" {
		t.Fatalf("expected default record, got %+v", got)
	}
}

func TestDomainCurrentDefaultsAndWarnsOnLoadError(t *testing.T) {
	backing := &domainStore[validatingRecord]{loadErr: errors.New("corrupt payload")}
	logger := &captureLogger{}
	domain := store.NewDomain[validatingRecord](backing, "record", func() validatingRecord {
		return validatingRecord{Name: "fresh"}
	}, store.WithDomainLogger[validatingRecord](logger))

	got := domain.Current(context.Background())
	if got.Name != "fresh" {
		t.Fatalf("expected default record, got %+v", got)
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(logger.warnings))
	}
}

func TestDomainUpdatePersistsMutation(t *testing.T) {
	backing := &domainStore[validatingRecord]{
		loadSnapshot: validatingRecord{Name: "before"},
		loadMeta:     store.Meta{ETag: "v1"},
		loadOK:       true,
	}
	domain := store.NewDomain[validatingRecord](backing, "record", func() validatingRecord {
		return validatingRecord{Name: "fresh"}
	})

	got, err := domain.Update(context.Background(), func(r *validatingRecord) error {
		r.Name = "after"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "after" {
		t.Fatalf("expected mutated record, got %+v", got)
	}
	if backing.saveCalls != 1 {
		t.Fatalf("expected one save, got %d", backing.saveCalls)
	}
	if backing.savedKey != "record" {
		t.Fatalf("expected save under %q, got %q", "record", backing.savedKey)
	}
	if backing.savedMeta.ETag != "v1" {
		t.Fatalf("expected loaded etag to ride along, got %+v", backing.savedMeta)
	}
}

func TestDomainUpdateValidationFailureDoesNotSave(t *testing.T) {
	backing := &domainStore[validatingRecord]{
		loadSnapshot: validatingRecord{Name: "ok"},
		loadOK:       true,
	}
	domain := store.NewDomain[validatingRecord](backing, "record", func() validatingRecord {
		return validatingRecord{Name: "fresh"}
	})

	_, err := domain.Update(context.Background(), func(r *validatingRecord) error {
		r.Name = ""
		return nil
	})
	if err == nil || err.Error() != "name is required" {
		t.Fatalf("expected validation error, got %v", err)
	}
	if backing.saveCalls != 0 {
		t.Fatalf("expected no save calls, got %d", backing.saveCalls)
	}
}

func TestDomainUpdateMutatorErrorDoesNotSave(t *testing.T) {
	backing := &domainStore[validatingRecord]{
		loadSnapshot: validatingRecord{Name: "ok"},
		loadOK:       true,
	}
	domain := store.NewDomain[validatingRecord](backing, "record", func() validatingRecord {
		return validatingRecord{Name: "fresh"}
	})

	boom := errors.New("no thanks")
	_, err := domain.Update(context.Background(), func(r *validatingRecord) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutator error, got %v", err)
	}
	if backing.saveCalls != 0 {
		t.Fatalf("expected no save calls, got %d", backing.saveCalls)
	}
}

func TestDomainUpdateSaveFailureIsLoggedNotReturned(t *testing.T) {
	backing := &domainStore[validatingRecord]{
		loadSnapshot: validatingRecord{Name: "before"},
		loadOK:       true,
		saveErr:      errors.New("disk full"),
	}
	logger := &captureLogger{}
	domain := store.NewDomain[validatingRecord](backing, "record", func() validatingRecord {
		return validatingRecord{Name: "fresh"}
	}, store.WithDomainLogger[validatingRecord](logger))

	got, err := domain.Update(context.Background(), func(r *validatingRecord) error {
		r.Name = "after"
		return nil
	})
	if err != nil {
		t.Fatalf("save failure must not surface, got %v", err)
	}
	if got.Name != "after" {
		t.Fatalf("expected computed record despite save failure, got %+v", got)
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(logger.warnings))
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	backing := store.NewMemoryStore[validatingRecord]()
	ctx := context.Background()

	want := validatingRecord{Name: "kept"}
	if _, err := backing.Save(ctx, "record", want, store.Meta{ETag: "v1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, meta, ok, err := backing.Load(ctx, "record")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
	if meta.ETag != "v1" {
		t.Fatalf("expected meta to round-trip, got %+v", meta)
	}
}
