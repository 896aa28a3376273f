// Package viewport implements the zoom/pan transform behind the image surface.
//
// The transform is view = scene*scale + offset. The zero value is not usable; use New.
package viewport

import (
	"image"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/soocke/tkview/domain/geometry"
)

const (
	DefaultMinZoom = 0.05
	DefaultMaxZoom = 64.0
)

// Viewport tracks the mapping between view (widget) pixels and scene (image) pixels.
type Viewport struct {
	image      geometry.Size
	client     geometry.Size
	scale      float64
	offX, offY float64
	minZoom    float64
	maxZoom    float64
	fitPending bool
	// fitted is true while the view is still the untouched result of a fit.
	fitted bool
}

// New returns an identity viewport with the given zoom limits.
// Non-positive or inverted limits fall back to the defaults.
func New(minZoom, maxZoom float64) *Viewport {
	if minZoom <= 0 {
		minZoom = DefaultMinZoom
	}
	if maxZoom <= 0 || maxZoom < minZoom {
		maxZoom = DefaultMaxZoom
	}
	return &Viewport{scale: 1, minZoom: minZoom, maxZoom: maxZoom}
}

// SetImage records the scene size and schedules a fit.
func (v *Viewport) SetImage(size geometry.Size) {
	v.image = size
	v.Reset()
}

// Reset schedules a fit of the image into the client area. The fit runs now
// if the client size is known, otherwise on the next SetClient.
func (v *Viewport) Reset() {
	v.fitPending = true
	if v.client.W > 0 && v.client.H > 0 {
		v.fit()
	}
}

// SetClient records the current widget size, running a pending fit against it.
func (v *Viewport) SetClient(size geometry.Size) {
	v.client = size
	if v.fitPending && size.W > 0 && size.H > 0 {
		v.fit()
	}
}

// Settle records the client size once the window has been mapped and laid
// out. A pending fit runs against it, and a fit that ran against an earlier
// transient size is redone. A view the user has zoomed or panned is kept.
func (v *Viewport) Settle(size geometry.Size) {
	v.client = size
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if v.fitPending || v.fitted {
		v.fit()
	}
}

// Client returns the last recorded widget size.
func (v *Viewport) Client() geometry.Size { return v.client }

// Image returns the scene size.
func (v *Viewport) Image() geometry.Size { return v.image }

// FitPending reports whether a reset is still waiting for a usable client size.
func (v *Viewport) FitPending() bool { return v.fitPending }

func (v *Viewport) fit() {
	v.fitPending = false
	v.fitted = true
	if v.image.W <= 0 || v.image.H <= 0 {
		v.scale, v.offX, v.offY = 1, 0, 0
		return
	}
	sx := float64(v.client.W) / float64(v.image.W)
	sy := float64(v.client.H) / float64(v.image.H)
	v.scale = clamp(math.Min(sx, sy), v.minZoom, v.maxZoom)
	v.offX = (float64(v.client.W) - float64(v.image.W)*v.scale) / 2
	v.offY = (float64(v.client.H) - float64(v.image.H)*v.scale) / 2
}

// Zoom returns the current scale factor (view pixels per scene pixel).
func (v *Viewport) Zoom() float64 { return v.scale }

// ViewToScene maps a widget position to image space. No clamping is applied.
func (v *Viewport) ViewToScene(p geometry.ViewPos) geometry.ScenePos {
	return geometry.ScenePos{
		X: (p.X - v.offX) / v.scale,
		Y: (p.Y - v.offY) / v.scale,
	}
}

// SceneToView maps an image position to widget space.
func (v *Viewport) SceneToView(p geometry.ScenePos) geometry.ViewPos {
	return geometry.ViewPos{
		X: p.X*v.scale + v.offX,
		Y: p.Y*v.scale + v.offY,
	}
}

// ZoomAt multiplies the scale by factor while keeping the scene point under p fixed.
func (v *Viewport) ZoomAt(p geometry.ViewPos, factor float64) {
	if factor <= 0 {
		return
	}
	anchor := v.ViewToScene(p)
	v.fitted = false
	v.scale = clamp(v.scale*factor, v.minZoom, v.maxZoom)
	v.offX = p.X - anchor.X*v.scale
	v.offY = p.Y - anchor.Y*v.scale
}

// SetZoom sets an absolute scale about the centre of the client area.
func (v *Viewport) SetZoom(scale float64) {
	if scale <= 0 {
		return
	}
	center := geometry.ViewPos{X: float64(v.client.W) / 2, Y: float64(v.client.H) / 2}
	v.ZoomAt(center, scale/v.scale)
}

// Pan moves the scene by (dx, dy) view pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.fitted = false
	v.offX += dx
	v.offY += dy
}

// Visible returns the part of the image inside the client area (src, in scene
// pixels) and where it lands in the widget (dst, in view pixels). Both are
// empty when nothing of the image is visible.
func (v *Viewport) Visible() (src, dst image.Rectangle) {
	if v.image.W <= 0 || v.image.H <= 0 || v.client.W <= 0 || v.client.H <= 0 {
		return image.Rectangle{}, image.Rectangle{}
	}
	tl := v.ViewToScene(geometry.ViewPos{})
	br := v.ViewToScene(geometry.ViewPos{X: float64(v.client.W), Y: float64(v.client.H)})
	src = image.Rect(
		int(math.Floor(tl.X)), int(math.Floor(tl.Y)),
		int(math.Ceil(br.X)), int(math.Ceil(br.Y)),
	).Intersect(image.Rect(0, 0, v.image.W, v.image.H))
	if src.Empty() {
		return image.Rectangle{}, image.Rectangle{}
	}
	p0 := v.SceneToView(geometry.ScenePos{X: float64(src.Min.X), Y: float64(src.Min.Y)})
	p1 := v.SceneToView(geometry.ScenePos{X: float64(src.Max.X), Y: float64(src.Max.Y)})
	dst = image.Rect(
		int(math.Round(p0.X)), int(math.Round(p0.Y)),
		int(math.Round(p1.X)), int(math.Round(p1.Y)),
	)
	return src, dst
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
