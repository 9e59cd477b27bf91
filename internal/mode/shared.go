package mode

import (
	"math"

	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

const (
	twoPi = 2 * math.Pi

	// fadeSamples is the edge ramp every segment gets unless a mode widens it.
	fadeSamples = 100
)

var melodicSteps = []int{-2, -1, 1, 2}

// saturate maps zoom in [0, inf) onto [0, 1).
func saturate(zoom float64) float64 {
	if zoom <= 0 {
		return 0
	}
	return zoom / (1 + zoom)
}

// wrapDegrees folds any angle into [0, 360).
func wrapDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// degreeFromAngle spreads 0..360 degrees evenly across the scale.
func degreeFromAngle(deg float64, s theory.Scale) int {
	n := s.Len()
	if n == 0 {
		return 0
	}
	idx := int(wrapDegrees(deg) / 360 * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// noteTone renders one enveloped sine at a named note.
func noteTone(name string, octave int, duration float64, sampleRate int, amp float64, fade int) (wave.Buffer, error) {
	f, err := theory.NoteToFrequency(name, octave)
	if err != nil {
		return wave.Buffer{}, err
	}
	tone, err := wave.SineTone(f, duration, sampleRate, amp)
	if err != nil {
		return wave.Buffer{}, err
	}
	if err := tone.Envelope(fade); err != nil {
		return wave.Buffer{}, err
	}
	return tone, nil
}

// finish joins the segments and re-envelopes the outer edges.
func finish(parts []wave.Buffer, fade int) (wave.Buffer, error) {
	out := wave.Concat(parts...)
	if err := out.Envelope(fade); err != nil {
		return wave.Buffer{}, err
	}
	return out, nil
}
