package view

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/soocke/tkview/domain/geometry"
	"github.com/soocke/tkview/ui/images"
	"github.com/soocke/tkview/ui/viewport"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ImageSurface is a label-backed pannable/zoomable image widget. Only the
// visible part of the image is rendered into the label's photo.
type ImageSurface struct {
	Label *LabelWidget

	vp       *viewport.Viewport
	img      image.Image
	photo    *Img // last Tk photo, deleted before replacement
	bg       color.Color
	zoomStep float64
	logger   *slog.Logger

	dragging bool
	last     geometry.ViewPos
}

// NewImageSurface returns a surface showing img through vp. Build must be
// called on the UI thread before it is packed.
func NewImageSurface(img image.Image, vp *viewport.Viewport, zoomStep float64, bg color.Color, logger *slog.Logger) *ImageSurface {
	if zoomStep <= 1 {
		zoomStep = 1.25
	}
	s := &ImageSurface{vp: vp, zoomStep: zoomStep, bg: bg, logger: logger}
	s.img = img
	s.vp.SetImage(boundsSize(img))
	return s
}

// Build creates the label. Its initial photo has the image's size so the
// window's requested geometry matches the image before the first layout.
func (s *ImageSurface) Build() {
	size := s.vp.Image()
	blank := images.Render(nil, image.Rectangle{}, image.Rectangle{}, size.W, size.H, s.bg)
	s.photo = NewPhoto(Data(images.EncodePNG(blank)))
	s.Label = Label(Image(s.photo), Borderwidth(0), Highlightthickness(0), Padx(0), Pady(0), Anchor("nw"))
}

func (s *ImageSurface) bindControls() {
	Bind(s.Label, "<Configure>", Command(s.resized))
	Bind(s.Label, "<ButtonPress-1>", Command(func(e *Event) {
		s.press(geometry.ViewPos{X: float64(e.X), Y: float64(e.Y)})
	}))
	Bind(s.Label, "<ButtonRelease-1>", Command(s.release))
	Bind(s.Label, "<Button-4>", Command(func(e *Event) {
		s.ZoomAt(geometry.ViewPos{X: float64(e.X), Y: float64(e.Y)}, s.zoomStep)
	}))
	Bind(s.Label, "<Button-5>", Command(func(e *Event) {
		s.ZoomAt(geometry.ViewPos{X: float64(e.X), Y: float64(e.Y)}, 1/s.zoomStep)
	}))
	Bind(App, "<Key-plus>", Command(func() { s.ZoomBy(s.zoomStep) }))
	Bind(App, "<Key-minus>", Command(func() { s.ZoomBy(1 / s.zoomStep) }))
	Bind(App, "<Key-r>", Command(s.ResetView))
}

// MapViewToScene maps a label position into image pixels.
func (s *ImageSurface) MapViewToScene(v geometry.ViewPos) geometry.ScenePos {
	return s.vp.ViewToScene(v)
}

// ResetView refits the image against the current label size, or against the
// first real size if the label has not been laid out yet.
func (s *ImageSurface) ResetView() {
	s.vp.Reset()
	s.render()
}

// SetImage replaces the displayed image.
func (s *ImageSurface) SetImage(img image.Image) {
	s.img = img
	s.vp.SetImage(boundsSize(img))
	s.render()
}

func boundsSize(img image.Image) geometry.Size {
	if img == nil {
		return geometry.Size{}
	}
	b := img.Bounds()
	return geometry.Size{W: b.Dx(), H: b.Dy()}
}

// OnPointerMove pans while the left button is held.
func (s *ImageSurface) OnPointerMove(v geometry.ViewPos) {
	if !s.dragging {
		return
	}
	s.vp.Pan(v.X-s.last.X, v.Y-s.last.Y)
	s.last = v
	s.render()
}

func (s *ImageSurface) press(v geometry.ViewPos) {
	s.dragging = true
	s.last = v
}

func (s *ImageSurface) release() { s.dragging = false }

func (s *ImageSurface) Zoom() float64 { return s.vp.Zoom() }

// SetZoom sets an absolute zoom about the centre of the surface.
func (s *ImageSurface) SetZoom(scale float64) {
	s.vp.SetZoom(scale)
	s.render()
}

// ZoomBy multiplies the zoom about the centre of the surface.
func (s *ImageSurface) ZoomBy(factor float64) {
	c := s.vp.Client()
	s.ZoomAt(geometry.ViewPos{X: float64(c.W) / 2, Y: float64(c.H) / 2}, factor)
}

// ZoomAt multiplies the zoom keeping the image point under v fixed.
func (s *ImageSurface) ZoomAt(v geometry.ViewPos, factor float64) {
	s.vp.ZoomAt(v, factor)
	s.render()
}

// SetBackground changes the fill around the image.
func (s *ImageSurface) SetBackground(bg color.Color) {
	s.bg = bg
	s.render()
}

// settle refits against the label's size once the window has been mapped.
func (s *ImageSurface) settle() {
	if s.Label == nil {
		return
	}
	s.vp.Settle(s.labelSize())
	s.render()
}

func (s *ImageSurface) labelSize() geometry.Size {
	return geometry.Size{
		W: winfoInt(WinfoWidth(s.Label.Window)),
		H: winfoInt(WinfoHeight(s.Label.Window)),
	}
}

func (s *ImageSurface) resized() {
	if s.Label == nil {
		return
	}
	size := s.labelSize()
	if size == s.vp.Client() {
		return
	}
	s.vp.SetClient(size)
	s.render()
}

func (s *ImageSurface) render() {
	if s.Label == nil {
		return
	}
	c := s.vp.Client()
	if c.W <= 0 || c.H <= 0 || s.vp.FitPending() {
		return
	}
	src, dst := s.vp.Visible()
	frame := images.Render(s.img, src, dst, c.W, c.H, s.bg)
	func() {
		defer func() {
			if r := recover(); r != nil && s.logger != nil {
				s.logger.Debug("surface render failed", "panic", r)
			}
		}()
		if s.photo != nil {
			s.photo.Delete()
		}
		s.photo = NewPhoto(Data(images.EncodePNG(frame)))
		s.Label.Configure(Image(s.photo))
	}()
}
