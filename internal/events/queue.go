package events

import "sync"

// DefaultQueueSize is the buffer used by the application queue.
const DefaultQueueSize = 32

// Queue is a FIFO stream of events with many producers and a single
// consumer. Producers block while the buffer is full, until the queue is
// stopped.
type Queue struct {
	ch   chan Event
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(size int) *Queue {
	if size < 0 {
		size = 0
	}
	return &Queue{
		ch:   make(chan Event, size),
		done: make(chan struct{}),
	}
}

// Publish enqueues ev. It returns false if the queue was stopped, in which
// case the event is dropped.
func (q *Queue) Publish(ev Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- ev:
		return true
	case <-q.done:
		return false
	}
}

// C returns the channel the consumer reads from.
func (q *Queue) C() <-chan Event {
	return q.ch
}

// Done is closed once the queue is stopped.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Stop rejects further events. Events already buffered stay readable from C.
func (q *Queue) Stop() {
	q.once.Do(func() { close(q.done) })
}
