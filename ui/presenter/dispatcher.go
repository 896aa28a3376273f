package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrDispatcherClosed is returned when work is posted after the UI loop has stopped.
var ErrDispatcherClosed = errors.New("presenter: dispatcher closed")

// Dispatcher hands work from other goroutines to the UI thread. Post and Call
// are safe for concurrent use; Drain must only run on the UI thread.
type Dispatcher struct {
	queue  chan func()
	closed chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewDispatcher returns a dispatcher with room for size queued calls.
func NewDispatcher(size int, logger *slog.Logger) *Dispatcher {
	if size < 1 {
		size = 1
	}
	return &Dispatcher{queue: make(chan func(), size), closed: make(chan struct{}), logger: logger}
}

// Post queues fn without waiting for it to run.
func (d *Dispatcher) Post(ctx context.Context, fn func()) error {
	if d == nil {
		return ErrDispatcherClosed
	}
	select {
	case <-d.closed:
		return ErrDispatcherClosed
	default:
	}
	select {
	case d.queue <- fn:
		return nil
	case <-d.closed:
		return ErrDispatcherClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call queues fn and waits until it has run on the UI thread.
func (d *Dispatcher) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	var panicked any
	wrapped := func() {
		defer close(done)
		defer func() { panicked = recover() }()
		fn()
	}
	if err := d.Post(ctx, wrapped); err != nil {
		return err
	}
	select {
	case <-done:
		if panicked != nil {
			return fmt.Errorf("presenter: ui call panicked: %v", panicked)
		}
		return nil
	case <-d.closed:
		return ErrDispatcherClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs everything currently queued and returns how many calls ran.
func (d *Dispatcher) Drain() int {
	if d == nil {
		return 0
	}
	n := 0
	for {
		select {
		case fn := <-d.queue:
			d.run(fn)
			n++
		default:
			return n
		}
	}
}

func (d *Dispatcher) run(fn func()) {
	defer func() {
		if r := recover(); r != nil && d.logger != nil {
			d.logger.Error("ui call panicked", "panic", r)
		}
	}()
	fn()
}

// Close rejects further work and releases goroutines blocked in Call. Idempotent.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.closed) })
}
