// Package events carries the fire-and-forget event push the host UI layers
// subscribe to. The bus makes no delivery guarantee beyond synchronous fan-out
// to the handlers registered at publish time.
package events

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Event is a lightweight notification about a state change.
type Event struct {
	Category   string
	Message    string
	OccurredAt time.Time
}

// Handler receives published events.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc allows plain functions to satisfy Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle dispatches to the underlying function.
func (fn HandlerFunc) Handle(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Bus fans events out to subscribed handlers. It is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus constructs an empty bus.
func NewBus(handlers ...Handler) *Bus {
	bus := &Bus{}
	for _, handler := range handlers {
		bus.Subscribe(handler)
	}
	return bus
}

// Subscribe registers a handler; nil handlers are dropped.
func (b *Bus) Subscribe(handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, handler)
	b.mu.Unlock()
}

// Publish normalizes the event and forwards it to every handler, returning a
// joined error if any fail. Events missing a category or message are dropped.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	if b == nil {
		return nil
	}
	normalized := Normalize(event)
	if normalized.Category == "" || normalized.Message == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Normalize trims whitespace and ensures a timestamp is present.
func Normalize(event Event) Event {
	normalized := event
	normalized.Category = strings.TrimSpace(event.Category)
	normalized.Message = strings.TrimSpace(event.Message)
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}

// Capture records published events for assertions in tests.
type Capture struct {
	Events []Event
	Err    error
	mu     sync.Mutex
}

// Handle records the event and returns any configured error.
func (c *Capture) Handle(_ context.Context, event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, event)
	return c.Err
}
