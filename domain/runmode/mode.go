// Package runmode decides what the terminate key does and bridges OS interrupts
// into the UI loop. The mode is fixed when the process starts and is passed by
// value to everything that needs it.
package runmode

// Mode selects which loop drives the process.
type Mode int

const (
	Batch       Mode = iota // the blocking Tk event loop owns the process
	Interactive             // a command loop keeps the process alive after the window hides
)

// FromFlag maps the startup interactive flag to a Mode.
func FromFlag(interactive bool) Mode {
	if interactive {
		return Interactive
	}
	return Batch
}

func (m Mode) String() string {
	switch m {
	case Batch:
		return "batch"
	case Interactive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Action is the outcome of a terminate request.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionHide
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionHide:
		return "hide"
	default:
		return "none"
	}
}
