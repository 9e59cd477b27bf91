// Package visual animates an escape-time fractal view and summarizes each
// frame as the parameter vector the audio engine consumes.
package visual

import (
	"image"
	"math"

	"github.com/cbegin/sonify-go/internal/mode"
)

const (
	MaxIter = 128

	// MaxZoom is where the endless zoom wraps back to 1.
	MaxZoom = 1e6
)

// Animator advances the view a fixed amount per frame.
type Animator struct {
	Zoom     float64
	PanX     float64
	PanY     float64
	Rotation float64 // degrees

	ZoomRate     float64 // multiplier per frame
	PanXRate     float64
	PanYRate     float64
	RotationRate float64 // degrees per frame

	Frame int
}

func NewAnimator() *Animator {
	return &Animator{
		Zoom:         1,
		ZoomRate:     1.02,
		PanXRate:     0.002,
		PanYRate:     0.001,
		RotationRate: 0.5,
	}
}

func (a *Animator) Step() {
	a.Frame++
	a.Zoom *= a.ZoomRate
	if a.Zoom > MaxZoom || !(a.Zoom > 0) {
		a.Zoom = 1
	}
	a.PanX += a.PanXRate
	a.PanY += a.PanYRate
	a.Rotation = math.Mod(a.Rotation+a.RotationRate, 360)
}

// Params combines the view with the statistics of the last rendered frame.
func (a *Animator) Params(s Stats) mode.Params {
	return mode.Params{
		Zoom:           a.Zoom,
		Rotation:       a.Rotation,
		ColorIntensity: s.Brightness,
		PatternDensity: s.EdgeDensity,
		PanX:           a.PanX,
		PanY:           a.PanY,
	}
}

// Stats summarizes a rendered frame, each field in [0, 1].
type Stats struct {
	Brightness  float64 // mean channel value
	EdgeDensity float64 // share of pixels whose escape count differs from the left neighbour
}

// Render draws the view into img and returns its statistics.
func (a *Animator) Render(img *image.RGBA) Stats {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Stats{}
	}
	sin, cos := math.Sincos(a.Rotation * math.Pi / 180)
	var sum, edges float64
	for y := 0; y < h; y++ {
		prev := -1
		for x := 0; x < w; x++ {
			zx := float64(x)/(0.5*a.Zoom*float64(w)) + a.PanX
			zy := float64(y)/(0.5*a.Zoom*float64(h)) + a.PanY
			cx := zx*cos - zy*sin
			cy := zx*sin + zy*cos
			i := escape(cx, cy)
			r, g, bl := uint8(i%8*32), uint8(i%16*16), uint8(i%32*8)
			off := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			img.Pix[off+0] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = bl
			img.Pix[off+3] = 0xff
			sum += float64(r) + float64(g) + float64(bl)
			if prev >= 0 && i != prev {
				edges++
			}
			prev = i
		}
	}
	n := float64(w * h)
	s := Stats{Brightness: sum / (n * 3 * 255)}
	if w > 1 {
		s.EdgeDensity = edges / float64((w-1)*h)
	}
	return s
}

func escape(cx, cy float64) int {
	zx, zy := cx, cy
	i := 0
	for ; i < MaxIter-1; i++ {
		if zx*zx+zy*zy > 4 {
			break
		}
		zx, zy = zx*zx-zy*zy+cx, 2*zx*zy+cy
	}
	return i
}
