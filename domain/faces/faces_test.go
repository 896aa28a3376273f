package faces

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDetector_ShortCascade(t *testing.T) {
	for _, data := range [][]byte{nil, {1, 2, 3}, make([]byte, minCascadeLen-1)} {
		if _, err := NewDetector(data); !errors.Is(err, ErrBadCascade) {
			t.Fatalf("len %d: expected ErrBadCascade, got %v", len(data), err)
		}
	}
}

func TestLoadDetector_MissingFile(t *testing.T) {
	_, err := LoadDetector(filepath.Join(t.TempDir(), "facefinder"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDetect_NilSafe(t *testing.T) {
	var d *Detector
	if got := d.Detect(image.NewGray(image.Rect(0, 0, 4, 4))); got != nil {
		t.Fatalf("nil detector should find nothing, got %v", got)
	}
}

func TestGrayscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(11, 10, color.NRGBA{A: 255})
	g := Grayscale(img)
	if len(g) != 2 {
		t.Fatalf("expected 2 pixels, got %d", len(g))
	}
	if g[0] < 250 || g[1] != 0 {
		t.Fatalf("unexpected luma %v", g)
	}
}

func TestFace_Rect(t *testing.T) {
	f := Face{Row: 50, Col: 40, Size: 20}
	if got := f.Rect(); got != image.Rect(30, 40, 50, 60) {
		t.Fatalf("unexpected rect %v", got)
	}
}
