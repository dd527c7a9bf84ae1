package steps

import (
	"sync"
)

type Event string

const (
	EventGoalChanged         Event = "goal_changed"
	EventDistanceUnitChanged Event = "distance_unit_changed"
)

// Listener is called with the event name only; listeners re-read whatever
// state they care about.
type Listener func(event Event)

type subscription struct {
	id       int
	listener Listener
	events   map[Event]bool
}

func (s *subscription) wants(event Event) bool {
	return len(s.events) == 0 || s.events[event]
}

// Broadcaster fans change events out to subscribers. Delivery is synchronous,
// on the goroutine that publishes, in subscription order. Events are not
// stored, so late subscribers do not see earlier events.
type Broadcaster struct {
	mu            sync.RWMutex
	nextID        int
	subscriptions []*subscription
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers listener for the given events, or for all events if
// none are given. The returned func unsubscribes; calling it more than once
// is fine.
func (b *Broadcaster) Subscribe(listener Listener, events ...Event) (unsubscribe func()) {
	sub := &subscription{
		listener: listener,
		events:   make(map[Event]bool, len(events)),
	}
	for _, e := range events {
		sub.events[e] = true
	}

	b.mu.Lock()
	b.nextID++
	sub.id = b.nextID
	b.subscriptions = append(b.subscriptions, sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.remove(sub.id)
		})
	}
}

func (b *Broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscriptions {
		if sub.id == id {
			b.subscriptions = append(b.subscriptions[:i:i], b.subscriptions[i+1:]...)
			return
		}
	}
}

// Publish delivers event to every matching subscriber and returns how many
// received it.
func (b *Broadcaster) Publish(event Event) int {
	// listeners may (un)subscribe while being notified
	b.mu.RLock()
	subs := make([]*subscription, len(b.subscriptions))
	copy(subs, b.subscriptions)
	b.mu.RUnlock()

	delivered := 0
	for _, sub := range subs {
		if !sub.wants(event) {
			continue
		}
		sub.listener(event)
		delivered++
	}
	return delivered
}

func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
