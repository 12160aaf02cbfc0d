package safe

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-journey"
	"github.com/goliatone/go-journey/pkg/store"
)

// Service wires the safe domain record, its transitions, and the effect
// dispatcher into agent capabilities.
type Service struct {
	domain     *store.Domain[Record]
	dispatcher *journey.Dispatcher
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs the safe service over domain. dispatcher may be nil
// when no side-effect sinks are wired.
func NewService(domain *store.Domain[Record], dispatcher *journey.Dispatcher, opts ...ServiceOption) *Service {
	s := &Service{
		domain:     domain,
		dispatcher: dispatcher,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Capabilities returns the safe capability set: lockSafe, unlockSafe and the
// read-only checkSafeLock.
func (s *Service) Capabilities() []journey.Capability {
	return []journey.Capability{
		{
			Name:        "lockSafe",
			Description: "Lock the safe with a key. Locking again replaces the key and restarts the lock timer.",
			Args: []journey.ArgSpec{
				{
					Name:        "key",
					Description: "Key used to lock the safe.",
					Type:        journey.ArgString,
					Required:    true,
					Rule:        `trim(args.key) != ""`,
				},
			},
			Handler: s.lock,
		},
		{
			Name:        "unlockSafe",
			Description: "Unlock the safe. Fails when the safe is not locked.",
			Handler:     s.unlock,
		},
		{
			Name:        "checkSafeLock",
			Description: "Report whether the safe is locked and for how long.",
			Handler:     s.checkLock,
		},
	}
}

func (s *Service) lock(ctx context.Context, inv journey.Invocation) (journey.Result, error) {
	key := inv.String("key")
	now := s.now()

	var effects []journey.Effect
	next, err := s.domain.Update(ctx, func(r *Record) error {
		updated, fx, err := Lock(*r, key, now)
		if err != nil {
			return err
		}
		*r = updated
		effects = fx
		return nil
	})
	if err != nil {
		return journey.Result{}, err
	}

	s.dispatcher.Dispatch(ctx, effects)
	return journey.Result{
		Text: "The safe is now locked.",
		Data: next,
	}, nil
}

func (s *Service) unlock(ctx context.Context, _ journey.Invocation) (journey.Result, error) {
	now := s.now()

	var (
		effects []journey.Effect
		prev    Record
	)
	next, err := s.domain.Update(ctx, func(r *Record) error {
		prev = *r
		updated, fx, err := Unlock(*r, now)
		if err != nil {
			return err
		}
		*r = updated
		effects = fx
		return nil
	})
	if err != nil {
		return journey.Result{}, err
	}

	s.dispatcher.Dispatch(ctx, effects)

	var elapsed time.Duration
	if prev.LockedAt != nil {
		elapsed = now.Sub(*prev.LockedAt)
	}
	return journey.Result{
		Text: fmt.Sprintf("The safe is now unlocked. It was locked for %s.", FormatDuration(elapsed)),
		Data: next,
	}, nil
}

// checkLock never caches: the duration is recomputed against the live clock on
// every call, and no activity or event is emitted for reads.
func (s *Service) checkLock(ctx context.Context, _ journey.Invocation) (journey.Result, error) {
	record := s.domain.Current(ctx)
	switch {
	case !record.IsLocked:
		return journey.Result{Text: "The safe is not locked", Data: record}, nil
	case record.LockedAt == nil:
		return journey.Result{Text: "The safe is locked, duration unknown", Data: record}, nil
	default:
		elapsed := s.now().Sub(*record.LockedAt)
		return journey.Result{
			Text: fmt.Sprintf("The safe has been locked for %s", FormatDuration(elapsed)),
			Data: record,
		}, nil
	}
}
