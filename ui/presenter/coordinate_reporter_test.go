package presenter

import (
	"testing"

	"github.com/soocke/tkview/domain/geometry"
)

type fixedMapper struct{ scene geometry.ScenePos }

func (m fixedMapper) MapViewToScene(geometry.ViewPos) geometry.ScenePos { return m.scene }

type recordingSink struct{ texts []string }

func (s *recordingSink) SetStatus(text string) { s.texts = append(s.texts, text) }

func TestFormatStatus(t *testing.T) {
	cases := []struct {
		name  string
		view  geometry.ViewPos
		scene geometry.ScenePos
		want  string
	}{
		{"rounds to nearest", geometry.ViewPos{X: 5, Y: 9}, geometry.ScenePos{X: 7.4, Y: 12.6}, "ui: 9, 5  image: 13, 7"},
		{"half away from zero", geometry.ViewPos{X: 1, Y: 2}, geometry.ScenePos{X: 2.5, Y: -2.5}, "ui: 2, 1  image: -3, 3"},
		{"view truncated", geometry.ViewPos{X: 3.9, Y: 4.2}, geometry.ScenePos{}, "ui: 4, 3  image: 0, 0"},
		{"outside image verbatim", geometry.ViewPos{}, geometry.ScenePos{X: -40, Y: 9000.4}, "ui: 0, 0  image: 9000, -40"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatStatus(tc.view, tc.scene); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestCoordinateReporter_PushesOncePerEvent(t *testing.T) {
	sink := &recordingSink{}
	r := NewCoordinateReporter(fixedMapper{scene: geometry.ScenePos{X: 7.4, Y: 12.6}}, sink)
	r.OnPointerMove(geometry.ViewPos{X: 11, Y: 22})
	r.OnPointerMove(geometry.ViewPos{X: 12, Y: 23})
	if len(sink.texts) != 2 {
		t.Fatalf("expected one push per event, got %d", len(sink.texts))
	}
	if sink.texts[1] != "ui: 23, 12  image: 13, 7" || r.Last() != sink.texts[1] {
		t.Fatalf("unexpected last text %q", r.Last())
	}
}

func TestCoordinateReporter_NilSafe(t *testing.T) {
	var r *CoordinateReporter
	r.OnPointerMove(geometry.ViewPos{})
	if r.Last() != "" {
		t.Fatalf("nil reporter should have no text")
	}
	NewCoordinateReporter(fixedMapper{}, nil).OnPointerMove(geometry.ViewPos{})
}
