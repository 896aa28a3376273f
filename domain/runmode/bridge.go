package runmode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// ErrSignalsUnsupported is returned by Listen on platforms that never deliver signals.
var ErrSignalsUnsupported = errors.New("runmode: signal delivery not supported on this platform")

// InterruptBridge turns an asynchronous interrupt into a quit request executed
// on the UI thread. The signal side only sets a single-slot pending flag;
// Poll, called by the UI loop, performs the quit.
type InterruptBridge struct {
	pending atomic.Bool
	fired   bool // UI thread only
	diag    io.Writer
	quit    func()
}

// NewInterruptBridge returns a bridge that writes to diag and calls quit once.
func NewInterruptBridge(diag io.Writer, quit func()) *InterruptBridge {
	if diag == nil {
		diag = io.Discard
	}
	return &InterruptBridge{diag: diag, quit: quit}
}

// Notify records an interrupt. Safe for concurrent use.
func (b *InterruptBridge) Notify() { b.pending.Store(true) }

// Pending reports whether an interrupt is waiting for the UI loop. Safe for concurrent use.
func (b *InterruptBridge) Pending() bool { return b.pending.Load() }

// Poll executes a pending interrupt: one carriage return on the diagnostic
// stream to end any in-progress progress line, then the quit request.
// Interrupts after the first are swallowed so the loop sees a single quit.
func (b *InterruptBridge) Poll() bool {
	if !b.pending.Swap(false) || b.fired {
		return false
	}
	b.fired = true
	fmt.Fprint(b.diag, "\r")
	if b.quit != nil {
		b.quit()
	}
	return true
}

// Listen subscribes to os.Interrupt and forwards deliveries to Notify until ctx is done.
func (b *InterruptBridge) Listen(ctx context.Context) error {
	ch := make(chan os.Signal, 1)
	stop, err := subscribe(ch)
	if err != nil {
		return err
	}
	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				b.Notify()
			}
		}
	}()
	return nil
}

// subscribe is swapped in tests.
var subscribe = subscribeInterrupt
