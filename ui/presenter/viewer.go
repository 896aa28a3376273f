package presenter

import (
	"image"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"

	"github.com/soocke/tkview/domain/geometry"
	"github.com/soocke/tkview/domain/runmode"
	"github.com/soocke/tkview/ui/images"
)

// Surface is the pannable/zoomable image widget the viewer composes.
type Surface interface {
	SceneMapper
	ResetView()
	SetImage(img image.Image)
	OnPointerMove(view geometry.ViewPos)
}

// Zoomer is implemented by surfaces that expose their zoom level.
type Zoomer interface {
	Zoom() float64
	SetZoom(scale float64)
	ZoomBy(factor float64)
}

// Window is the subset of the top-level window the viewer drives.
type Window interface {
	StatusSink
	SetTitle(title string)
	FrameDecoration() geometry.Size
	ScreenSize() geometry.Size
	ApplyPlacement(p geometry.Placement)
	Show()
	Hide()
	Quit()
}

// ViewerDeps are the collaborators handed to NewViewer.
type ViewerDeps struct {
	Window  Window
	Surface Surface
	Logger  *slog.Logger
}

// Viewer composes the window, the image surface, the coordinate reporter and
// the run-mode controller. All methods must run on the UI thread.
type Viewer struct {
	window     Window
	surface    Surface
	reporter   *CoordinateReporter
	controller *runmode.Controller
	logger     *slog.Logger

	img       image.Image
	path      string
	title     string
	status    string
	placement geometry.Placement
	visible   bool
}

// NewViewer builds the viewer for img. Placement is computed once here, before
// the window is shown, and the surface view is reset after it is applied. The
// window stays hidden until Show.
func NewViewer(img image.Image, inputPath string, mode runmode.Mode, deps ViewerDeps) *Viewer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	v := &Viewer{window: deps.Window, surface: deps.Surface, logger: logger}
	v.reporter = NewCoordinateReporter(deps.Surface, v)
	v.controller = runmode.NewController(mode, v, logger)

	var decoration, screen geometry.Size
	if v.window != nil {
		decoration = v.window.FrameDecoration()
		screen = v.window.ScreenSize()
	}
	v.placement = geometry.Plan(imageSize(img), decoration, screen)
	if v.window != nil {
		v.window.ApplyPlacement(v.placement)
	}
	v.apply(img, inputPath)
	if v.surface != nil {
		v.surface.ResetView()
	}
	logger.Info("viewer placed",
		"geometry", v.placement.String(),
		"decoration", decoration.String(),
		"screen", screen.String(),
		"mode", mode.String(),
	)
	return v
}

// UpdateView shows img under path. Repeating the current pair is a no-op.
func (v *Viewer) UpdateView(img image.Image, inputPath string) {
	if v == nil {
		return
	}
	if img == v.img && inputPath == v.path {
		return
	}
	v.apply(img, inputPath)
	if v.surface != nil {
		v.surface.ResetView()
	}
}

func (v *Viewer) apply(img image.Image, inputPath string) {
	v.img = img
	v.path = inputPath
	if v.surface != nil {
		v.surface.SetImage(img)
	}
	v.SetTitle(TitleFor(inputPath))
}

// OnPointerMove runs the surface's own handler, then reports coordinates.
func (v *Viewer) OnPointerMove(view geometry.ViewPos) {
	if v == nil {
		return
	}
	if v.surface != nil {
		v.surface.OnPointerMove(view)
	}
	v.reporter.OnPointerMove(view)
}

// OnTerminate handles the terminate key and the window close button.
func (v *Viewer) OnTerminate() runmode.Action {
	if v == nil {
		return runmode.ActionNone
	}
	return v.controller.Terminate()
}

// Show makes the window visible.
func (v *Viewer) Show() {
	if v == nil || v.window == nil {
		return
	}
	v.window.Show()
	v.visible = true
}

// Hide withdraws the window. The surface and its view state are kept.
func (v *Viewer) Hide() {
	if v == nil || v.window == nil {
		return
	}
	v.window.Hide()
	v.visible = false
}

// Quit asks the host loop to end the process.
func (v *Viewer) Quit() {
	if v == nil || v.window == nil {
		return
	}
	v.window.Quit()
}

func (v *Viewer) Visible() bool { return v != nil && v.visible }

func (v *Viewer) Title() string { return v.title }

// SetTitle overrides the window title until the next UpdateView with a new pair.
func (v *Viewer) SetTitle(title string) {
	v.title = title
	if v.window != nil {
		v.window.SetTitle(title)
	}
}

func (v *Viewer) Status() string { return v.status }

// SetStatus writes to the status line. It is also the reporter's sink.
func (v *Viewer) SetStatus(text string) {
	v.status = text
	if v.window != nil {
		v.window.SetStatus(text)
	}
}

func (v *Viewer) Path() string                  { return v.path }
func (v *Viewer) Image() image.Image            { return v.img }
func (v *Viewer) ImageSize() geometry.Size      { return imageSize(v.img) }
func (v *Viewer) Placement() geometry.Placement { return v.placement }
func (v *Viewer) Mode() runmode.Mode            { return v.controller.Mode() }
func (v *Viewer) Controller() *runmode.Controller {
	return v.controller
}

// Reporter exposes the coordinate reporter.
func (v *Viewer) Reporter() *CoordinateReporter { return v.reporter }

// ResetView refits the image into the surface.
func (v *Viewer) ResetView() {
	if v.surface != nil {
		v.surface.ResetView()
	}
}

// MapViewToScene maps through the surface without touching the status line.
func (v *Viewer) MapViewToScene(view geometry.ViewPos) geometry.ScenePos {
	if v.surface == nil {
		return geometry.ScenePos{X: view.X, Y: view.Y}
	}
	return v.surface.MapViewToScene(view)
}

// Zoom returns the surface zoom, or 1 for surfaces without zoom.
func (v *Viewer) Zoom() float64 {
	if z, ok := v.surface.(Zoomer); ok {
		return z.Zoom()
	}
	return 1
}

func (v *Viewer) SetZoom(scale float64) {
	if z, ok := v.surface.(Zoomer); ok {
		z.SetZoom(scale)
	}
}

func (v *Viewer) ZoomBy(factor float64) {
	if z, ok := v.surface.(Zoomer); ok {
		z.ZoomBy(factor)
	}
}

// TitleFor derives the window title from an input path or URL: its basename.
func TitleFor(inputPath string) string {
	if images.IsValidURL(inputPath) {
		if u, err := url.Parse(inputPath); err == nil {
			if base := path.Base(u.Path); base != "/" && base != "." {
				return base
			}
			return u.Host
		}
	}
	return filepath.Base(inputPath)
}

func imageSize(img image.Image) geometry.Size {
	if img == nil {
		return geometry.Size{}
	}
	b := img.Bounds()
	return geometry.Size{W: b.Dx(), H: b.Dy()}
}
