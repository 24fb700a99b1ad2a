package shell

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher runs UI mutations on the context that owns the tray.
type Dispatcher interface {
	// Dispatch schedules fn without blocking the caller. It reports false
	// when fn was dropped.
	Dispatch(fn func()) bool
}

// Immediate runs each function on the calling goroutine.
type Immediate struct{}

// Dispatch runs fn right away.
func (Immediate) Dispatch(fn func()) bool {
	fn()
	return true
}

// DefaultDispatchQueueSize bounds pending UI work.
const DefaultDispatchQueueSize = 64

// SerialDispatcher runs functions one at a time, in submission order, on a
// single worker goroutine. When the backlog is full new work is dropped, so
// a slow tray never stalls the caller.
type SerialDispatcher struct {
	work chan func()
	done chan struct{}
	once sync.Once
}

// NewSerialDispatcher creates a dispatcher with room for size pending
// functions.
func NewSerialDispatcher(size int) *SerialDispatcher {
	if size <= 0 {
		size = DefaultDispatchQueueSize
	}
	return &SerialDispatcher{
		work: make(chan func(), size),
		done: make(chan struct{}),
	}
}

// Dispatch enqueues fn.
func (d *SerialDispatcher) Dispatch(fn func()) bool {
	select {
	case <-d.done:
		return false
	default:
	}
	select {
	case d.work <- fn:
		return true
	default:
		return false
	}
}

// Run executes queued functions until ctx ends or Close is called.
func (d *SerialDispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.done:
			return nil
		case fn := <-d.work:
			d.exec(fn)
		}
	}
}

func (d *SerialDispatcher) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("UI call panicked", "component", "shell", "panic", r)
		}
	}()
	fn()
}

// Close stops the worker. Pending functions are discarded.
func (d *SerialDispatcher) Close() {
	d.once.Do(func() { close(d.done) })
}
