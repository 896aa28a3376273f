// Package capture wraps native screen access: the primary screen size used as a
// placement fallback, and full-screen grabs for the grab command.
package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/tkview/domain/geometry"
)

var (
	screenRect    = screenshot.ScreenRect
	captureScreen = screenshot.CaptureScreen
)

// ScreenSize returns the size of the primary screen as reported by the OS.
func ScreenSize() (geometry.Size, error) {
	r, err := screenRect()
	if err != nil {
		return geometry.Size{}, fmt.Errorf("screen rect: %w", err)
	}
	return geometry.Size{W: r.Dx(), H: r.Dy()}, nil
}

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := captureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}
