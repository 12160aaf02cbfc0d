package journey

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-journey/pkg/activity"
	"github.com/goliatone/go-journey/pkg/events"
)

func TestDispatchFansOutToSinks(t *testing.T) {
	capture := &activity.CaptureHook{}
	eventCapture := &events.Capture{}
	dispatcher := NewDispatcher(
		WithActivityHooks(activity.Hooks{capture}),
		WithEventBus(events.NewBus(eventCapture)),
	)

	dispatcher.Dispatch(context.Background(), []Effect{
		ActivityEffect{Entry: activity.Entry{Kind: "safe_locked", Title: "Safe locked"}},
		EventEffect{Event: events.Event{Category: "safe", Message: "The safe has been locked"}},
		nil,
	})

	if len(capture.Entries) != 1 || capture.Entries[0].Kind != "safe_locked" {
		t.Fatalf("unexpected activity entries %+v", capture.Entries)
	}
	if len(eventCapture.Events) != 1 || eventCapture.Events[0].Category != "safe" {
		t.Fatalf("unexpected events %+v", eventCapture.Events)
	}
}

func TestDispatchReportsSinkFailures(t *testing.T) {
	sinkErr := errors.New("sink down")
	var seen []error
	dispatcher := NewDispatcher(
		WithActivityHooks(activity.Hooks{activity.HookFunc(func(ctx context.Context, entry activity.Entry) error {
			return sinkErr
		})}),
		WithDispatchErrorHandler(func(err error) {
			seen = append(seen, err)
		}),
	)

	dispatcher.Dispatch(context.Background(), []Effect{
		ActivityEffect{Entry: activity.Entry{Kind: "safe_locked", Title: "Safe locked"}},
	})

	if len(seen) != 1 || !errors.Is(seen[0], sinkErr) {
		t.Fatalf("expected sink failure reported, got %v", seen)
	}
}

func TestDispatchOnNilDispatcherIsSafe(t *testing.T) {
	var dispatcher *Dispatcher
	dispatcher.Dispatch(context.Background(), []Effect{
		ActivityEffect{Entry: activity.Entry{Kind: "k", Title: "t"}},
		EventEffect{Event: events.Event{Category: "c", Message: "m"}},
	})
}

func TestEventEffectWithoutBusIsDropped(t *testing.T) {
	dispatcher := NewDispatcher(WithDispatchErrorHandler(func(err error) {
		t.Fatalf("unexpected error %v", err)
	}))
	dispatcher.Dispatch(context.Background(), []Effect{
		EventEffect{Event: events.Event{Category: "c", Message: "m"}},
	})
}
