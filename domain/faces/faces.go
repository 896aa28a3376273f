// Package faces runs a pigo cascade over the displayed image for the faces
// command.
package faces

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sort"

	pigo "github.com/esimov/pigo/core"
)

// ErrBadCascade is returned for cascade data that cannot be a pigo cascade.
var ErrBadCascade = errors.New("faces: invalid cascade file")

// minCascadeLen is the size of the cascade header pigo reads before any tree.
const minCascadeLen = 16

// Face is one clustered detection in image pixel space.
type Face struct {
	Row, Col int // centre
	Size     int // side of the square detection window
	Score    float32
}

// Rect returns the square covered by the detection.
func (f Face) Rect() image.Rectangle {
	half := f.Size / 2
	return image.Rect(f.Col-half, f.Row-half, f.Col+half, f.Row+half)
}

// Detector wraps an unpacked cascade. It is safe for sequential use only.
type Detector struct {
	classifier *pigo.Pigo
	// MinScore drops clustered detections below this quality.
	MinScore float32
	// Angle is the rotation (0..1 of a full turn) the cascade is run at.
	Angle float64
}

// NewDetector unpacks cascade data.
func NewDetector(cascade []byte) (*Detector, error) {
	if len(cascade) < minCascadeLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadCascade, len(cascade))
	}
	p, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCascade, err)
	}
	return &Detector{classifier: p, MinScore: 5}, nil
}

// LoadDetector reads and unpacks a cascade file from disk.
func LoadDetector(path string) (*Detector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade: %w", err)
	}
	return NewDetector(data)
}

// Detect returns faces sorted by descending score.
func (d *Detector) Detect(img image.Image) []Face {
	if d == nil || d.classifier == nil || img == nil {
		return nil
	}
	b := img.Bounds()
	cols, rows := b.Dx(), b.Dy()
	if cols == 0 || rows == 0 {
		return nil
	}
	params := pigo.CascadeParams{
		MinSize:     max(20, min(cols, rows)/10),
		MaxSize:     max(cols, rows),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: Grayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
	dets := d.classifier.RunCascade(params, d.Angle)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	out := make([]Face, 0, len(dets))
	for _, det := range dets {
		if det.Q < d.MinScore {
			continue
		}
		out = append(out, Face{Row: det.Row, Col: det.Col, Size: det.Scale, Score: det.Q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Grayscale converts img to the row-major luma buffer the cascade expects.
func Grayscale(img image.Image) []uint8 {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	gray := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray[y*width+x] = uint8((0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 256)
		}
	}
	return gray
}
