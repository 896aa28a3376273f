package capture

import (
	"errors"
	"image"
	"testing"
)

func TestScreenSize(t *testing.T) {
	orig := screenRect
	defer func() { screenRect = orig }()

	screenRect = func() (image.Rectangle, error) { return image.Rect(0, 0, 1920, 1080), nil }
	s, err := ScreenSize()
	if err != nil || s.W != 1920 || s.H != 1080 {
		t.Fatalf("unexpected size %v err=%v", s, err)
	}

	boom := errors.New("no display")
	screenRect = func() (image.Rectangle, error) { return image.Rectangle{}, boom }
	if _, err := ScreenSize(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestGrab(t *testing.T) {
	orig := captureScreen
	defer func() { captureScreen = orig }()

	captureScreen = func() (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil }
	img, err := Grab()
	if err != nil || img.Bounds().Dx() != 2 {
		t.Fatalf("unexpected grab %v err=%v", img, err)
	}
}
