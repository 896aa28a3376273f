// Package geometry holds the value types shared by the window and the image
// surface, and the planner that decides where the viewer window first appears.
package geometry

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadGeometry is returned when a window manager geometry string cannot be parsed.
var ErrBadGeometry = errors.New("geometry: malformed geometry string")

// Size is a width/height pair in pixels.
type Size struct {
	W, H int
}

// Add returns the component-wise sum of s and o.
func (s Size) Add(o Size) Size { return Size{W: s.W + o.W, H: s.H + o.H} }

// Sub returns the component-wise difference s - o.
func (s Size) Sub(o Size) Size { return Size{W: s.W - o.W, H: s.H - o.H} }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Point is an integer screen position.
type Point struct {
	X, Y int
}

// ViewPos is a pointer position relative to the visible surface.
type ViewPos struct {
	X, Y float64
}

// ScenePos is a position in image pixel space, independent of zoom and pan.
type ScenePos struct {
	X, Y float64
}

// Placement is the initial outer size and position of the viewer window.
type Placement struct {
	Size     Size
	Position Point
}

// String renders p in the window manager form "WxH+X+Y". Negative offsets are
// written as "+-N", which Tk reads as N pixels left of (or above) the origin.
func (p Placement) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", p.Size.W, p.Size.H, p.Position.X, p.Position.Y)
}

// Plan computes the initial window placement. The window is the image plus the
// frame decoration, offset from the top-left corner of the screen by a quarter
// of the leftover space. The position is not clamped: an image larger than the
// screen yields a negative position.
func Plan(image, decoration, screen Size) Placement {
	size := image.Add(decoration)
	return Placement{
		Size: size,
		Position: Point{
			X: (screen.W - size.W) / 4,
			Y: (screen.H - size.H) / 4,
		},
	}
}

// Decoration is the space a window needs beyond its content: outer minus
// inner, never negative in either dimension.
func Decoration(outer, inner Size) Size {
	d := outer.Sub(inner)
	return Size{W: max(d.W, 0), H: max(d.H, 0)}
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
// Each offset may also be written as "-N" or "+-N".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)(\+-?\d+|-\d+)(\+-?\d+|-\d+)$`)

// ParseTk parses a geometry string as reported by "wm geometry". "WxH-X-Y"
// and "WxH+-X+-Y" parse to the same Placement.
func ParseTk(g string) (Placement, error) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return Placement{}, fmt.Errorf("%w: %q", ErrBadGeometry, g)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(strings.TrimPrefix(m[3], "+"))
	y, _ := strconv.Atoi(strings.TrimPrefix(m[4], "+"))
	return Placement{Size: Size{W: w, H: h}, Position: Point{X: x, Y: y}}, nil
}
