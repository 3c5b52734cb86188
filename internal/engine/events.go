package engine

import "sync"

// stream is a small fan-out registry for outbound events. Sends never block;
// a subscriber that falls behind misses events rather than stalling the
// analysis path. Unsubscribing is idempotent and safe during emission.
type stream[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
	buffer int
	closed bool
}

func newStream[T any](buffer int) *stream[T] {
	return &stream[T]{
		subs:   make(map[int]chan T),
		buffer: buffer,
	}
}

// subscribe returns a receive channel and a cancel func. After close, the
// returned channel is already closed.
func (s *stream[T]) subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan T, s.buffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// publish delivers v to every subscriber without blocking.
func (s *stream[T]) publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// closeAll shuts the stream down, closing every subscriber channel.
func (s *stream[T]) closeAll() {
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
