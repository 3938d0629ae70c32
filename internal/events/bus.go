//go:generate mockgen -source=bus.go -destination=mocks/mock_events.go -package=mocks

// Package events implements the process-wide named event channel used to
// push asynchronous updates from background tasks to listeners.
//
// Delivery is best effort: Emit never blocks. Events from one producer
// goroutine reach each subscriber in emission order; no ordering is defined
// between producers.
package events

import (
	"errors"
	"sync"
)

// Event names.
const (
	ProgressUpdate   = "progress-update"
	ProgressComplete = "progress-complete"
)

var (
	// ErrNoListener is returned by Emit when nobody is subscribed.
	ErrNoListener = errors.New("events: no listener")
	// ErrSubscriberFull is returned by Emit when at least one subscriber's
	// buffer was full and the event was dropped for it.
	ErrSubscriberFull = errors.New("events: subscriber buffer full")
	// ErrClosed is returned by Emit after the bus was closed.
	ErrClosed = errors.New("events: bus closed")
)

// Event is a named payload.
type Event struct {
	Name    string
	Payload any
}

// Emitter is the producer side of the bus.
type Emitter interface {
	Emit(name string, payload any) error
}

// Bus fans events out to subscribers. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

var _ Emitter = (*Bus)(nil)

// Subscription receives the events emitted after it was created.
type Subscription struct {
	bus  *Bus
	ch   chan Event
	once sync.Once
}

// Subscribe registers a listener with the given buffer size (minimum 1).
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	s := &Subscription{bus: b, ch: make(chan Event, buffer)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(s.ch)
		s.once.Do(func() {})
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Events returns the receive channel. It is closed by Close or by Bus.Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close unregisters the subscription and closes its channel. It is idempotent.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	s.closeLocked()
}

func (s *Subscription) closeLocked() {
	s.once.Do(func() {
		delete(s.bus.subs, s)
		close(s.ch)
	})
}

// Emit delivers the event to every subscriber without blocking. The event is
// dropped for subscribers whose buffer is full, in which case
// ErrSubscriberFull is returned after all others were served.
func (b *Bus) Emit(name string, payload any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	if len(b.subs) == 0 {
		return ErrNoListener
	}

	ev := Event{Name: name, Payload: payload}
	var err error
	for s := range b.subs {
		select {
		case s.ch <- ev:
		default:
			err = ErrSubscriberFull
		}
	}
	return err
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscription; later emissions fail with ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.closeLocked()
	}
}
