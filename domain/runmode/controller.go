package runmode

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Host is the part of the window the controller drives.
type Host interface {
	// Quit asks the host event loop to end the process.
	Quit()
	// Hide withdraws the window without destroying it.
	Hide()
}

// Controller arbitrates terminate requests according to the run mode.
// All methods except those documented otherwise run on the UI thread.
type Controller struct {
	mode   Mode
	host   Host
	logger *slog.Logger
	bridge *InterruptBridge
}

// NewController returns a controller bound to a fixed mode.
func NewController(mode Mode, host Host, logger *slog.Logger) *Controller {
	return &Controller{mode: mode, host: host, logger: logger}
}

// Mode reports the mode fixed at construction.
func (c *Controller) Mode() Mode {
	if c == nil {
		return Batch
	}
	return c.mode
}

// Terminate handles the terminate key (and the window close button).
// Batch quits the process; Interactive only hides the window.
func (c *Controller) Terminate() Action {
	if c == nil || c.host == nil {
		return ActionNone
	}
	switch c.mode {
	case Interactive:
		c.host.Hide()
		c.debug("terminate", "action", ActionHide)
		return ActionHide
	default:
		c.host.Quit()
		c.debug("terminate", "action", ActionQuit)
		return ActionQuit
	}
}

// InstallInterruptBridge starts forwarding interrupt signals to the UI loop
// when running in Batch mode. The bridge stops listening when ctx is done.
// Platforms without signal delivery are skipped and reported as success.
func (c *Controller) InstallInterruptBridge(ctx context.Context, diag io.Writer) error {
	if c == nil || c.host == nil || c.mode != Batch || c.bridge != nil {
		return nil
	}
	b := NewInterruptBridge(diag, c.host.Quit)
	if err := b.Listen(ctx); err != nil {
		if errors.Is(err, ErrSignalsUnsupported) {
			c.debug("interrupt bridge skipped", "error", err)
			return nil
		}
		return err
	}
	c.bridge = b
	return nil
}

// PollInterrupt runs a pending interrupt quit, if any. Call it from the UI loop tick.
func (c *Controller) PollInterrupt() bool {
	if c == nil || c.bridge == nil {
		return false
	}
	return c.bridge.Poll()
}

func (c *Controller) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
