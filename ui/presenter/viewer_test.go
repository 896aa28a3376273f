package presenter

import (
	"image"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/soocke/tkview/domain/geometry"
	"github.com/soocke/tkview/domain/runmode"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type mockWindow struct {
	calls      []string
	titles     []string
	statuses   []string
	placements []geometry.Placement
	decoration geometry.Size
	screen     geometry.Size
	shows      int
	hides      int
	quits      int
}

func (w *mockWindow) SetStatus(s string) { w.calls = append(w.calls, "status"); w.statuses = append(w.statuses, s) }
func (w *mockWindow) SetTitle(s string)  { w.calls = append(w.calls, "title"); w.titles = append(w.titles, s) }
func (w *mockWindow) FrameDecoration() geometry.Size {
	w.calls = append(w.calls, "decoration")
	return w.decoration
}
func (w *mockWindow) ScreenSize() geometry.Size {
	w.calls = append(w.calls, "screen")
	return w.screen
}
func (w *mockWindow) ApplyPlacement(p geometry.Placement) {
	w.calls = append(w.calls, "place")
	w.placements = append(w.placements, p)
}
func (w *mockWindow) Show() { w.calls = append(w.calls, "show"); w.shows++ }
func (w *mockWindow) Hide() { w.calls = append(w.calls, "hide"); w.hides++ }
func (w *mockWindow) Quit() { w.calls = append(w.calls, "quit"); w.quits++ }

type mockSurface struct {
	log    *[]string
	scene  geometry.ScenePos
	images []image.Image
	resets int
	moves  int
	zoom   float64
}

func (s *mockSurface) MapViewToScene(geometry.ViewPos) geometry.ScenePos {
	*s.log = append(*s.log, "map")
	return s.scene
}
func (s *mockSurface) ResetView() { *s.log = append(*s.log, "reset"); s.resets++ }
func (s *mockSurface) SetImage(img image.Image) {
	*s.log = append(*s.log, "image")
	s.images = append(s.images, img)
}
func (s *mockSurface) OnPointerMove(geometry.ViewPos) { *s.log = append(*s.log, "surface-move"); s.moves++ }
func (s *mockSurface) Zoom() float64                  { return s.zoom }
func (s *mockSurface) SetZoom(z float64)              { s.zoom = z }
func (s *mockSurface) ZoomBy(f float64)               { s.zoom *= f }

func newTestViewer(t *testing.T, mode runmode.Mode, path string) (*Viewer, *mockWindow, *mockSurface) {
	t.Helper()
	w := &mockWindow{decoration: geometry.Size{W: 2, H: 24}, screen: geometry.Size{W: 1920, H: 1080}}
	s := &mockSurface{log: &w.calls, zoom: 1}
	img := image.NewNRGBA(image.Rect(0, 0, 800, 600))
	v := NewViewer(img, path, mode, ViewerDeps{Window: w, Surface: s, Logger: discardLogger()})
	return v, w, s
}

func TestNewViewer_ConstructionOrder(t *testing.T) {
	v, w, s := newTestViewer(t, runmode.Batch, "/a/b/photo.png")
	want := "decoration,screen,place,image,title,reset"
	if got := strings.Join(w.calls, ","); got != want {
		t.Fatalf("construction order:\n got %s\nwant %s", got, want)
	}
	if s.resets != 1 {
		t.Fatalf("expected exactly one reset, got %d", s.resets)
	}
	if w.shows != 0 || v.Visible() {
		t.Fatalf("window must stay hidden until Show")
	}
	wantPlace := geometry.Placement{Size: geometry.Size{W: 802, H: 624}, Position: geometry.Point{X: 279, Y: 114}}
	if len(w.placements) != 1 || w.placements[0] != wantPlace || v.Placement() != wantPlace {
		t.Fatalf("unexpected placement %+v", w.placements)
	}
}

func TestNewViewer_DecorationReachesPlacement(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	place := func(decoration geometry.Size) geometry.Placement {
		w := &mockWindow{decoration: decoration, screen: geometry.Size{W: 1280, H: 1024}}
		s := &mockSurface{log: &w.calls, zoom: 1}
		NewViewer(img, "/x/scan.png", runmode.Batch, ViewerDeps{Window: w, Surface: s, Logger: discardLogger()})
		if len(w.placements) != 1 {
			t.Fatalf("expected one placement, got %d", len(w.placements))
		}
		return w.placements[0]
	}
	bare := place(geometry.Size{})
	// A status line 26px tall and no horizontal padding.
	withStatus := place(geometry.Size{H: 26})
	if withStatus.Size != (geometry.Size{W: 640, H: 506}) {
		t.Fatalf("decoration not added to size: %v", withStatus.Size)
	}
	if got := withStatus.Size.Sub(bare.Size); got != (geometry.Size{H: 26}) {
		t.Fatalf("size delta %v, want 0x26", got)
	}
	if withStatus.Position != (geometry.Point{X: 160, Y: 129}) {
		t.Fatalf("position %+v, want quarter of the leftover space", withStatus.Position)
	}
}

func TestNewViewer_TitleIsBasename(t *testing.T) {
	v, w, _ := newTestViewer(t, runmode.Batch, "/a/b/photo.png")
	if v.Title() != "photo.png" || w.titles[len(w.titles)-1] != "photo.png" {
		t.Fatalf("unexpected title %q (window %v)", v.Title(), w.titles)
	}
}

func TestTitleFor(t *testing.T) {
	cases := map[string]string{
		"/a/b/photo.png":                       "photo.png",
		"photo.png":                            "photo.png",
		"https://example.com/img/cat.jpg?x=1":  "cat.jpg",
		"https://example.com/":                 "example.com",
		"relative/dir/scan.tiff":               "scan.tiff",
	}
	for in, want := range cases {
		if got := TitleFor(in); got != want {
			t.Errorf("TitleFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestViewer_UpdateViewIdempotent(t *testing.T) {
	v, w, s := newTestViewer(t, runmode.Batch, "/a/b/photo.png")
	img := v.Image()
	before := len(w.calls)
	v.UpdateView(img, "/a/b/photo.png")
	v.UpdateView(img, "/a/b/photo.png")
	if len(w.calls) != before {
		t.Fatalf("same pair must not touch window or surface, got %v", w.calls[before:])
	}
	if len(s.images) != 1 || s.resets != 1 || len(w.statuses) != 0 {
		t.Fatalf("unexpected side effects images=%d resets=%d statuses=%v", len(s.images), s.resets, w.statuses)
	}

	other := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	v.UpdateView(other, "/c/next.png")
	if v.Title() != "next.png" || v.Path() != "/c/next.png" {
		t.Fatalf("new pair should re-derive title, got %q", v.Title())
	}
	if len(s.images) != 2 || s.images[1] != image.Image(other) || s.resets != 2 {
		t.Fatalf("new pair should hand image to surface and reset, images=%d resets=%d", len(s.images), s.resets)
	}
	if got := v.ImageSize(); got != (geometry.Size{W: 10, H: 10}) {
		t.Fatalf("image size %v", got)
	}
	// Placement is never recomputed.
	if len(w.placements) != 1 {
		t.Fatalf("placement recomputed: %v", w.placements)
	}
}

func TestViewer_PointerMoveSurfaceFirst(t *testing.T) {
	v, w, s := newTestViewer(t, runmode.Batch, "/a/b/photo.png")
	s.scene = geometry.ScenePos{X: 7.4, Y: 12.6}
	w.calls = nil
	v.OnPointerMove(geometry.ViewPos{X: 30, Y: 40})
	if got := strings.Join(w.calls, ","); got != "surface-move,map,status" {
		t.Fatalf("unexpected pointer call order %s", got)
	}
	if want := "ui: 40, 30  image: 13, 7"; v.Status() != want || w.statuses[0] != want {
		t.Fatalf("status %q want %q", v.Status(), want)
	}
	if v.Reporter().Last() != v.Status() {
		t.Fatalf("reporter last %q != status %q", v.Reporter().Last(), v.Status())
	}
}

func TestViewer_TerminateBatchQuits(t *testing.T) {
	v, w, _ := newTestViewer(t, runmode.Batch, "/a/b/photo.png")
	v.Show()
	if a := v.OnTerminate(); a != runmode.ActionQuit {
		t.Fatalf("expected quit action, got %v", a)
	}
	if w.quits != 1 || w.hides != 0 {
		t.Fatalf("batch terminate: quits=%d hides=%d", w.quits, w.hides)
	}
}

func TestViewer_TerminateInteractiveHides(t *testing.T) {
	v, w, s := newTestViewer(t, runmode.Interactive, "/a/b/photo.png")
	v.Show()
	if a := v.OnTerminate(); a != runmode.ActionHide {
		t.Fatalf("expected hide action, got %v", a)
	}
	if w.hides != 1 || w.quits != 0 || v.Visible() {
		t.Fatalf("interactive terminate: quits=%d hides=%d visible=%v", w.quits, w.hides, v.Visible())
	}
	// Hide is non-destructive: the surface keeps its image and can be shown again.
	if len(s.images) != 1 || s.resets != 1 {
		t.Fatalf("hide touched the surface")
	}
	v.Show()
	if !v.Visible() || w.shows != 2 {
		t.Fatalf("expected window to be shown again")
	}
}

func TestViewer_ZoomDelegation(t *testing.T) {
	v, _, s := newTestViewer(t, runmode.Batch, "x.png")
	v.SetZoom(2)
	v.ZoomBy(1.5)
	if v.Zoom() != 3 || s.zoom != 3 {
		t.Fatalf("zoom %v", v.Zoom())
	}
}

func TestViewer_NilSafe(t *testing.T) {
	var v *Viewer
	v.UpdateView(nil, "")
	v.OnPointerMove(geometry.ViewPos{})
	v.Show()
	v.Hide()
	v.Quit()
	if v.OnTerminate() != runmode.ActionNone || v.Visible() {
		t.Fatalf("nil viewer should do nothing")
	}
}
