package mood

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-journey"
	"github.com/goliatone/go-journey/pkg/store"
)

// Service wires the mood domain record into agent capabilities.
type Service struct {
	domain *store.Domain[Record]
	now    func() time.Time
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

// NewService constructs the mood service over domain.
func NewService(domain *store.Domain[Record], opts ...ServiceOption) *Service {
	s := &Service{
		domain: domain,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Capabilities returns the mood capability set.
func (s *Service) Capabilities() []journey.Capability {
	return []journey.Capability{
		{
			Name:        "setMood",
			Description: "Record the user's current mood.",
			Args: []journey.ArgSpec{
				{
					Name:        "mood",
					Description: "One of: great, good, okay, low, bad.",
					Type:        journey.ArgString,
					Required:    true,
					Rule:        `args.mood in ["great", "good", "okay", "low", "bad"]`,
				},
			},
			Handler: s.set,
		},
		{
			Name:        "getMood",
			Description: "Return the current mood record.",
			Handler:     s.get,
		},
	}
}

func (s *Service) set(ctx context.Context, inv journey.Invocation) (journey.Result, error) {
	value := inv.String("mood")
	next, err := s.domain.Update(ctx, func(r *Record) error {
		*r = Set(*r, value, s.now())
		return nil
	})
	if err != nil {
		return journey.Result{}, err
	}
	return journey.Result{
		Text: fmt.Sprintf("Mood set to %s.", value),
		Data: next,
	}, nil
}

func (s *Service) get(ctx context.Context, _ journey.Invocation) (journey.Result, error) {
	record := s.domain.Current(ctx)
	text := "No mood recorded yet."
	if record.Current != "" {
		text = fmt.Sprintf("Current mood: %s.", record.Current)
	}
	return journey.Result{Text: text, Data: record}, nil
}
