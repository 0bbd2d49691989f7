package eventbus

import (
	"context"
	"testing"
)

type testEvent struct{ N int }

type otherEvent struct{ S string }

func TestPublishReachesSubscribersOfSameType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsub := Subscribe(func(ctx context.Context, e testEvent) {
		got = append(got, e.N)
	})
	defer unsub()

	var others int
	defer Subscribe(func(ctx context.Context, e otherEvent) { others++ })()

	Publish(context.Background(), testEvent{N: 1})
	Publish(context.Background(), testEvent{N: 2})

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("handler saw %v", got)
	}
	if others != 0 {
		t.Fatalf("other-typed handler ran %d times", others)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	Use(New())
	defer Use(nil)

	calls := 0
	unsub := Subscribe(func(ctx context.Context, e testEvent) { calls++ })

	Publish(context.Background(), testEvent{})
	unsub()
	Publish(context.Background(), testEvent{})

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestPublishWithoutBusIsNoop(t *testing.T) {
	Use(nil)
	Publish(context.Background(), testEvent{N: 9})
	unsub := Subscribe(func(ctx context.Context, e testEvent) {})
	unsub()
}
