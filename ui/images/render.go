package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Render composes the visible part of src onto a w x h canvas filled with bg.
// src is the region of img to show (scene pixels) and dst where it lands on the
// canvas (view pixels). Magnified views use nearest-neighbour sampling so
// individual pixels stay crisp.
func Render(img image.Image, src, dst image.Rectangle, w, h int, bg color.Color) *image.NRGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	canvas := imaging.New(w, h, bg)
	if img == nil || src.Empty() || dst.Empty() {
		return canvas
	}
	part := imaging.Crop(img, src.Add(img.Bounds().Min))
	filter := imaging.Linear
	if dst.Dx() >= src.Dx() {
		filter = imaging.NearestNeighbor
	}
	if dst.Dx() != part.Bounds().Dx() || dst.Dy() != part.Bounds().Dy() {
		part = imaging.Resize(part, dst.Dx(), dst.Dy(), filter)
	}
	return imaging.Paste(canvas, part, dst.Min)
}
