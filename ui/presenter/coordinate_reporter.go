package presenter

import (
	"fmt"
	"math"

	"github.com/soocke/tkview/domain/geometry"
)

// SceneMapper maps a surface position into image space.
type SceneMapper interface {
	MapViewToScene(geometry.ViewPos) geometry.ScenePos
}

// StatusSink receives status line text.
type StatusSink interface {
	SetStatus(text string)
}

// CoordinateReporter turns pointer positions into dual-space status text.
type CoordinateReporter struct {
	mapper SceneMapper
	sink   StatusSink
	last   string
}

func NewCoordinateReporter(mapper SceneMapper, sink StatusSink) *CoordinateReporter {
	return &CoordinateReporter{mapper: mapper, sink: sink}
}

// OnPointerMove maps view into scene space and pushes the formatted text to the sink.
// Positions outside the image are reported as is.
func (r *CoordinateReporter) OnPointerMove(view geometry.ViewPos) {
	if r == nil || r.mapper == nil {
		return
	}
	scene := r.mapper.MapViewToScene(view)
	r.last = FormatStatus(view, scene)
	if r.sink != nil {
		r.sink.SetStatus(r.last)
	}
}

// Last returns the most recent text pushed to the sink.
func (r *CoordinateReporter) Last() string {
	if r == nil {
		return ""
	}
	return r.last
}

// FormatStatus renders "ui: <row>, <col>  image: <row>, <col>". View coordinates
// are truncated to whole pixels; scene coordinates are rounded half away from zero.
func FormatStatus(view geometry.ViewPos, scene geometry.ScenePos) string {
	return fmt.Sprintf("ui: %d, %d  image: %d, %d",
		int(view.Y), int(view.X),
		int(math.Round(scene.Y)), int(math.Round(scene.X)),
	)
}
