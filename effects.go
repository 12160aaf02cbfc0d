package journey

import (
	"context"

	"github.com/goliatone/go-journey/pkg/activity"
	"github.com/goliatone/go-journey/pkg/events"
)

// Effect describes one side effect a transition wants performed after its
// record has been persisted. Transitions stay pure by returning effects
// instead of touching sinks directly; the Dispatcher executes them.
type Effect interface {
	Apply(ctx context.Context, d *Dispatcher) error
}

// ActivityEffect appends an entry to the activity log.
type ActivityEffect struct {
	Entry activity.Entry
}

// Apply implements Effect.
func (e ActivityEffect) Apply(ctx context.Context, d *Dispatcher) error {
	if d == nil {
		return nil
	}
	return d.hooks.Notify(ctx, e.Entry)
}

// EventEffect publishes a notification on the event bus.
type EventEffect struct {
	Event events.Event
}

// Apply implements Effect.
func (e EventEffect) Apply(ctx context.Context, d *Dispatcher) error {
	if d == nil || d.bus == nil {
		return nil
	}
	return d.bus.Publish(ctx, e.Event)
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithActivityHooks wires activity-log hooks into the dispatcher.
func WithActivityHooks(hooks activity.Hooks) DispatcherOption {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithEventBus wires the event bus into the dispatcher.
func WithEventBus(bus *events.Bus) DispatcherOption {
	return func(d *Dispatcher) {
		d.bus = bus
	}
}

// WithDispatchErrorHandler observes effect failures. Failures never propagate
// to the capability caller; by default they are dropped.
func WithDispatchErrorHandler(fn func(error)) DispatcherOption {
	return func(d *Dispatcher) {
		d.onError = fn
	}
}

// Dispatcher executes transition effects against the configured sinks.
// Dispatch is fire-and-forget: sink failures are reported to the error
// handler and never returned to the caller.
type Dispatcher struct {
	hooks   activity.Hooks
	bus     *events.Bus
	onError func(error)
}

// NewDispatcher constructs a dispatcher. A zero dispatcher is valid and drops
// every effect.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Dispatch applies each effect in order.
func (d *Dispatcher) Dispatch(ctx context.Context, effects []Effect) {
	if d == nil {
		return
	}
	for _, effect := range effects {
		if effect == nil {
			continue
		}
		if err := effect.Apply(ctx, d); err != nil && d.onError != nil {
			d.onError(err)
		}
	}
}
