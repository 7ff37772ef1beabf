package storage

import "sync"

// Resource identifies a class of stored records.
type Resource string

const (
	ResourceHabits      Resource = "habits"
	ResourceCompletions Resource = "completions"
)

// Kind classifies a change to a record.
type Kind string

const (
	Created Kind = "created"
	Updated Kind = "updated"
	Deleted Kind = "deleted"
)

// Change is one change notification. Consumers treat every kind the same
// way: re-fetch and recompute from the store.
type Change struct {
	Resource Resource
	Kind     Kind
	ID       string
}

// Feed fans out change notifications to subscribers. Each subscriber holds
// a one-slot channel: if a notification is already pending, further ones
// are coalesced into it. That is safe because consumers do a full refresh
// per notification, so one pending signal covers any number of changes.
type Feed struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[*Subscription]struct{})}
}

// Subscription is a cancellable handle on a Feed. Receive from C; call
// Close when done.
type Subscription struct {
	C    chan Change
	feed *Feed
	once sync.Once
}

// Subscribe registers a new subscriber.
func (f *Feed) Subscribe() *Subscription {
	sub := &Subscription{C: make(chan Change, 1), feed: f}
	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
	return sub
}

// Publish delivers the change to every subscriber without blocking.
func (f *Feed) Publish(ch Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		select {
		case sub.C <- ch:
		default:
			// A notification is already pending; coalesce.
		}
	}
}

// Close unregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		delete(s.feed.subs, s)
		s.feed.mu.Unlock()
		close(s.C)
	})
}
