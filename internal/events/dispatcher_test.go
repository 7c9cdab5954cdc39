package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventStaffCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventStaffCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventStaffDeleted, func(_ context.Context, e Event) error {
		t.Fatalf("unexpected delivery of %s", e.Type)
		return nil
	})

	if err := d.Publish(context.Background(), NewEvent(EventStaffCreated, 7, nil, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 2 || got[0] != "first:staff_created" || got[1] != "second:staff_created" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestDispatcherKeepsGoingAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	called := false
	d.Subscribe(EventStaffUpdated, func(context.Context, Event) error { return boom })
	d.Subscribe(EventStaffUpdated, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventStaffUpdated, 1, nil, nil))
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to wrap boom, got %v", err)
	}
	if !called {
		t.Fatal("second handler was not invoked")
	}
}

func TestNewEventStampsIdentity(t *testing.T) {
	actor := int64(3)
	e := NewEvent(EventStaffDeleted, 9, &actor, StaffPayload{Email: "a@b.c"})
	if e.ID == "" || e.Timestamp.IsZero() {
		t.Fatalf("event missing id or timestamp: %+v", e)
	}
	if e.StaffID != 9 || e.ActorID == nil || *e.ActorID != 3 {
		t.Fatalf("unexpected ids: %+v", e)
	}
}
