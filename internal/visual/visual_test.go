package visual

import (
	"image"
	"math"
	"testing"
)

func TestAnimatorStep(t *testing.T) {
	a := NewAnimator()
	a.Step()
	a.Step()
	if math.Abs(a.Zoom-1.02*1.02) > 1e-12 {
		t.Fatalf("zoom = %v", a.Zoom)
	}
	if math.Abs(a.PanX-0.004) > 1e-12 || math.Abs(a.PanY-0.002) > 1e-12 {
		t.Fatalf("pan = (%v, %v)", a.PanX, a.PanY)
	}
	if a.Rotation != 1 || a.Frame != 2 {
		t.Fatalf("rotation %v frame %d", a.Rotation, a.Frame)
	}
}

func TestAnimatorZoomWraps(t *testing.T) {
	a := NewAnimator()
	a.Zoom = MaxZoom
	a.Step()
	if a.Zoom != 1 {
		t.Fatalf("zoom = %v, want wrap to 1", a.Zoom)
	}
}

func TestEscapeInsideAndOutside(t *testing.T) {
	if got := escape(0, 0); got != MaxIter-1 {
		t.Fatalf("origin escaped at %d", got)
	}
	if got := escape(2, 2); got != 0 {
		t.Fatalf("far point escaped at %d, want 0", got)
	}
}

func TestRenderStatsInRange(t *testing.T) {
	a := NewAnimator()
	a.PanX, a.PanY = -1.5, -1
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	s := a.Render(img)
	if s.Brightness <= 0 || s.Brightness > 1 {
		t.Fatalf("brightness = %v", s.Brightness)
	}
	if s.EdgeDensity <= 0 || s.EdgeDensity > 1 {
		t.Fatalf("edge density = %v", s.EdgeDensity)
	}
	if img.Pix[3] != 0xff {
		t.Fatal("alpha not written")
	}
	p := a.Params(s)
	if err := p.Validate(); err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.ColorIntensity != s.Brightness || p.Zoom != a.Zoom {
		t.Fatalf("params = %+v", p)
	}
}

func TestRenderEmptyImage(t *testing.T) {
	if s := NewAnimator().Render(image.NewRGBA(image.Rect(0, 0, 0, 0))); s != (Stats{}) {
		t.Fatalf("stats = %+v", s)
	}
}
