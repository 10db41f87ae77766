package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/triage-dashboard/internal/events"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "first")
		return nil
	})
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "second")
		return nil
	})
	dispatcher.Subscribe(events.EventTicketAssigned, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "wrong type")
		return nil
	})

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestFailingHandlerDoesNotStopDelivery(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	delivered := false
	dispatcher.Subscribe(events.EventTicketUpdated, func(ctx context.Context, e events.Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(events.EventTicketUpdated, func(ctx context.Context, e events.Event) error {
		delivered = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketUpdated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !delivered {
		t.Fatal("second handler not invoked after first failed")
	}
}

func TestPublishWithoutSubscribersIsHarmless(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	if err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketStatusChanged}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
