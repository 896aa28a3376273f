package view

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/tkview/capture"
	"github.com/soocke/tkview/domain/geometry"
	"github.com/soocke/tkview/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the viewer callbacks the root view routes Tk events to.
type Handlers struct {
	OnPointerMove func(geometry.ViewPos)
	OnTerminate   func()
}

// RootView owns the toplevel window: title, placement, visibility, the status
// line and the image surface packed above it.
type RootView struct {
	logger *slog.Logger

	Surface     *ImageSurface
	StatusLabel *TLabelWidget

	afterID string
	stopped bool
	shown   bool
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build withdraws the window and lays out the surface and status line.
// Nothing is visible until Show.
func (rv *RootView) Build(surface *ImageSurface, h Handlers) {
	if rv == nil {
		return
	}
	WmWithdraw(App)
	theme.InitStyles()

	rv.StatusLabel = TLabel(Txt(""), Anchor("w"), Style(theme.StyleStatusLabel))
	Pack(rv.StatusLabel, Side("bottom"), Fill("x"))

	rv.Surface = surface
	surface.Build()
	Pack(surface.Label, Side("top"), Fill("both"), Expand(true))

	if h.OnTerminate != nil {
		Bind(App, "<Escape>", Command(h.OnTerminate))
		WmProtocol(App, "WM_DELETE_WINDOW", h.OnTerminate)
	}
	if h.OnPointerMove != nil {
		move := func(e *Event) {
			h.OnPointerMove(geometry.ViewPos{X: float64(e.X), Y: float64(e.Y)})
		}
		Bind(surface.Label, "<Motion>", Command(move))
		Bind(surface.Label, "<B1-Motion>", Command(move))
	}
	surface.bindControls()
}

// SetTitle sets the window manager title.
func (rv *RootView) SetTitle(title string) {
	if rv == nil || rv.stopped {
		return
	}
	App.WmTitle(title)
}

// SetStatus updates the status line text.
func (rv *RootView) SetStatus(text string) {
	if rv == nil || rv.stopped || rv.StatusLabel == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		rv.StatusLabel.Configure(Txt(text))
	}()
}

// FrameDecoration is the space the toplevel requests beyond the image
// surface, which is the status line and any padding. Requested sizes are
// valid while the window is still withdrawn, so this is measured before the
// first map and before the surface is laid out at its final size.
func (rv *RootView) FrameDecoration() geometry.Size {
	if rv == nil || rv.Surface == nil || rv.Surface.Label == nil {
		return geometry.Size{}
	}
	// Runs pending geometry propagation so the requested sizes are current.
	Update()
	outer := geometry.Size{W: winfoInt(WinfoReqwidth(App)), H: winfoInt(WinfoReqheight(App))}
	inner := geometry.Size{
		W: winfoInt(WinfoReqwidth(rv.Surface.Label.Window)),
		H: winfoInt(WinfoReqheight(rv.Surface.Label.Window)),
	}
	pad := geometry.Decoration(outer, inner)
	rv.debug("decoration probed", "outer", outer.String(), "inner", inner.String(), "pad", pad.String())
	return pad
}

// ScreenSize reports the screen the window lives on. The native screen query
// is used when Tk reports nothing useful.
func (rv *RootView) ScreenSize() geometry.Size {
	s := geometry.Size{W: winfoInt(WinfoScreenWidth(App)), H: winfoInt(WinfoScreenHeight(App))}
	if s.W > 0 && s.H > 0 {
		return s
	}
	native, err := capture.ScreenSize()
	if err != nil {
		rv.debug("screen size unavailable", "error", err)
		return s
	}
	return native
}

// ApplyPlacement sets the initial window geometry.
func (rv *RootView) ApplyPlacement(p geometry.Placement) {
	if rv == nil || rv.stopped {
		return
	}
	WmGeometry(App, p.String())
}

// Geometry reads the live window geometry from the window manager.
func (rv *RootView) Geometry() (geometry.Placement, error) {
	if rv == nil || rv.stopped {
		return geometry.Placement{}, geometry.ErrBadGeometry
	}
	return geometry.ParseTk(WmGeometry(App))
}

// Show maps the window and raises it. On the first show the surface is
// refitted once the map and its layout have been processed.
func (rv *RootView) Show() {
	if rv == nil || rv.stopped {
		return
	}
	WmDeiconify(App)
	if rv.shown || rv.Surface == nil {
		return
	}
	rv.shown = true
	Update()
	rv.Surface.settle()
}

// Hide withdraws the window. Widgets are kept.
func (rv *RootView) Hide() {
	if rv == nil || rv.stopped {
		return
	}
	WmWithdraw(App)
}

// Quit cancels the loop tick and destroys the root window, which ends App.Wait.
func (rv *RootView) Quit() {
	if rv == nil || rv.stopped {
		return
	}
	rv.stopped = true
	if rv.afterID != "" {
		TclAfterCancel(rv.afterID)
		rv.afterID = ""
	}
	Destroy(App)
}

// Wait runs the Tk event loop until the root window is destroyed.
func (rv *RootView) Wait() { App.Wait() }

// Stopped reports whether Quit has run.
func (rv *RootView) Stopped() bool { return rv == nil || rv.stopped }

// Schedule queues fn on the Tk event loop after the poll interval.
func (rv *RootView) Schedule(interval time.Duration, fn func()) {
	if rv == nil || rv.stopped {
		return
	}
	rv.afterID = TclAfter(interval, fn)
}

// ApplyTheme switches the palette and repaints the status line and surface.
func (rv *RootView) ApplyTheme(dark bool) {
	if rv == nil || rv.stopped {
		return
	}
	theme.SetDark(dark)
	if rv.Surface != nil {
		rv.Surface.SetBackground(theme.SurfaceColor())
	}
}

func (rv *RootView) debug(msg string, args ...any) {
	if rv != nil && rv.logger != nil {
		rv.logger.Debug(msg, args...)
	}
}

// winfoInt parses a winfo result, treating anything unparsable as zero.
func winfoInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
