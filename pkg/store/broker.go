// Package store holds the application state containers. Each store owns
// one slice of state, mutates it only through its exposed methods, and
// publishes change events on a shared broker. Derived views are computed
// reads, recomputed on every call.
package store

import (
	"log/slog"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/daybook-app/daybook/pkg/core"
)

const defaultSubscriberBuffer = 16

// Broker fans store events out to subscribers. Subscriptions carry a glob
// pattern matched against the event key (date key for note events), so a
// consumer can watch e.g. "2025-01-*". Slow subscribers drop events rather
// than block publishers.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	closed bool
	buffer int
	log    *slog.Logger
}

type subscriber struct {
	pattern string
	ch      chan core.Event
}

// NewBroker creates an empty broker.
func NewBroker(log *slog.Logger) *Broker {
	return NewBrokerBuffered(log, defaultSubscriberBuffer)
}

// NewBrokerBuffered creates a broker with a custom per-subscriber channel
// size.
func NewBrokerBuffered(log *slog.Logger, buffer int) *Broker {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Broker{subs: make(map[int]*subscriber), log: log, buffer: buffer}
}

// Subscribe registers a subscriber for events whose key matches pattern.
// An empty pattern matches everything. The returned cancel function must
// be called to release the subscription.
func (b *Broker) Subscribe(pattern string) (<-chan core.Event, func()) {
	if pattern == "" {
		pattern = "**"
	}
	sub := &subscriber{pattern: pattern, ch: make(chan core.Event, b.buffer)}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if !b.closed {
		b.subs[id] = sub
	} else {
		close(sub.ch)
	}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish delivers an event to every matching subscriber.
func (b *Broker) Publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, sub := range b.subs {
		match, err := doublestar.Match(sub.pattern, e.Key())
		if err != nil || !match {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			if b.log != nil {
				b.log.Warn("dropping event for slow subscriber", "type", string(e.Type), "key", e.Key())
			}
		}
	}
}

// Close releases all subscriptions. Publish becomes a no-op.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}
