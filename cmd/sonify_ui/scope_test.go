package main

import (
	"image"
	"math"
	"math/cmplx"
	"testing"
)

func TestAnalyzerSnapshotReturnsNewestSamples(t *testing.T) {
	a := newAnalyzer(44100)
	a.Tap([]float64{1, 2, 3})
	a.Tap([]float64{4, 5})
	got := a.Snapshot(3)
	want := []float32{3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", got, want)
		}
	}
	if n := len(a.Snapshot(ringBufLen * 2)); n != ringBufLen {
		t.Fatalf("oversized snapshot length = %d", n)
	}
}

func TestFFTFindsSineBin(t *testing.T) {
	const n = 64
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(math.Sin(2*math.Pi*4*float64(i)/n), 0)
	}
	fft(x)
	peak := 0
	for i := 1; i < n/2; i++ {
		if cmplx.Abs(x[i]) > cmplx.Abs(x[peak]) {
			peak = i
		}
	}
	if peak != 4 {
		t.Fatalf("peak bin = %d, want 4", peak)
	}
}

func TestFindZeroCrossing(t *testing.T) {
	if got := findZeroCrossing([]float32{-1, -0.5, 0.5, 1, -1}, 4); got != 2 {
		t.Fatalf("crossing = %d, want 2", got)
	}
	if got := findZeroCrossing([]float32{1, 1, 1}, 3); got != 0 {
		t.Fatalf("no crossing = %d, want 0", got)
	}
}

func TestSliderValue(t *testing.T) {
	rect := image.Rect(0, 0, 346, 44)
	tests := []struct {
		mx   int
		want float64
	}{
		{0, 0},
		{130, 0},
		{230, 0.5},
		{400, 1},
	}
	for _, tt := range tests {
		got, ok := sliderValue(tt.mx, rect)
		if !ok || math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("sliderValue(%d) = %v, %v; want %v", tt.mx, got, ok, tt.want)
		}
	}
	if _, ok := sliderValue(10, image.Rect(0, 0, 100, 44)); ok {
		t.Fatal("expected a too-narrow slider to be rejected")
	}
}

func TestShortenEnd(t *testing.T) {
	if got := shortenEnd("desert night", 8); got != "deser..." {
		t.Fatalf("shortenEnd = %q", got)
	}
	if got := shortenEnd("rain", 8); got != "rain" {
		t.Fatalf("shortenEnd = %q", got)
	}
}
