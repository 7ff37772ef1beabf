package storage

import (
	"testing"
	"time"
)

func TestFeedDeliversToSubscriber(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe()
	defer sub.Close()

	feed.Publish(Change{Resource: ResourceHabits, Kind: Created, ID: "h1"})

	select {
	case got := <-sub.C:
		if got.Resource != ResourceHabits || got.Kind != Created || got.ID != "h1" {
			t.Errorf("received change = %+v, want habits/created/h1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no change delivered")
	}
}

func TestFeedCoalescesPendingChanges(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe()
	defer sub.Close()

	// Publish more changes than the subscription buffers; none may block.
	for i := 0; i < 10; i++ {
		feed.Publish(Change{Resource: ResourceCompletions, Kind: Created, ID: "c"})
	}

	select {
	case <-sub.C:
	case <-time.After(time.Second):
		t.Fatal("no change delivered after burst")
	}
}

func TestFeedClosedSubscriptionReceivesNothing(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe()
	sub.Close()
	sub.Close() // idempotent

	feed.Publish(Change{Resource: ResourceHabits, Kind: Deleted, ID: "h1"})

	if _, ok := <-sub.C; ok {
		t.Error("closed subscription still delivered a change")
	}
}

func TestFeedMultipleSubscribers(t *testing.T) {
	feed := NewFeed()
	a := feed.Subscribe()
	b := feed.Subscribe()
	defer a.Close()
	defer b.Close()

	feed.Publish(Change{Resource: ResourceHabits, Kind: Updated, ID: "h2"})

	for name, sub := range map[string]*Subscription{"a": a, "b": b} {
		select {
		case <-sub.C:
		case <-time.After(time.Second):
			t.Errorf("subscriber %s did not receive the change", name)
		}
	}
}
