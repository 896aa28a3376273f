package presenter

// InterruptPoller is polled once per tick for a pending interrupt quit.
type InterruptPoller interface {
	PollInterrupt() bool
}

// Loop drives periodic work on the UI thread.
//
// Each Tick runs queued cross-goroutine calls, lets the interrupt bridge act,
// and invokes the scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Dispatch  *Dispatcher
	Interrupt InterruptPoller
	Schedule  func()
}

func NewLoop(dispatch *Dispatcher, interrupt InterruptPoller, schedule func()) *Loop {
	return &Loop{Dispatch: dispatch, Interrupt: interrupt, Schedule: schedule}
}

// Tick performs one iteration. It does not reschedule after an interrupt quit.
func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Dispatch != nil {
		l.Dispatch.Drain()
	}
	if l.Interrupt != nil && l.Interrupt.PollInterrupt() {
		return
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
