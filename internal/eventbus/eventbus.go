// Package eventbus provides a small fan-out publish/subscribe bus used
// to stream planning events (phase changes, assignments, warnings) to
// interested observers without coupling them to the engine.
package eventbus

import "sync"

// Event is an arbitrary event passed on the bus.
type Event any

// EventBus is the publishing side plus subscription management.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Close()
}

// Bus is the default EventBus implementation. Delivery is non-blocking:
// a subscriber that falls behind loses events rather than stalling the
// planning pass.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan Event
	closed bool
}

// New creates a Bus.
func New() *Bus { return &Bus{} }

// Publish sends the event to all subscribers without blocking.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its channel. The
// channel is closed when the bus closes.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Close closes all subscriber channels and drops them.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
