// Package events holds the reactive containers that broadcast the current
// state of a collection to every subscriber.
package events

import "sync"

// Subject holds a current value and broadcasts every new value to its
// subscribers. A subscriber always sees the latest value: when it falls
// behind, stale values are dropped instead of blocking the publisher.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[uint64]chan T
	nextID uint64
	closed bool
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  make(map[uint64]chan T),
	}
}

// Value returns the last published value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.value = v
	for _, ch := range s.subs {
		offer(ch, v)
	}
}

// Subscribe returns a channel that first yields the current value and then
// every later one, plus a cancel func that unsubscribes and closes the channel.
func (s *Subject[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan T, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	ch <- s.value
	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// SubscribeAny is Subscribe with the element type erased, for consumers
// that serve several subjects of different types.
func (s *Subject[T]) SubscribeAny() (<-chan any, func()) {
	ch, cancel := s.Subscribe()
	out := make(chan any, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for v := range ch {
			select {
			case out <- v:
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			close(done)
			cancel()
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Subject[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close ends every subscription. Later publishes are ignored.
func (s *Subject[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// offer replaces whatever is buffered in ch with v. Callers hold the
// subject lock, so no other sender can refill the buffer in between.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

// Source is anything that can be streamed to a client.
type Source interface {
	SubscribeAny() (<-chan any, func())
}
