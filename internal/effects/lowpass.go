package effects

import "math"

// Lowpass is a one-pole RC lowpass filter.
type Lowpass struct {
	alpha float64
	y     float64
}

// NewLowpass creates a lowpass with the given cutoff in Hz. A cutoff at or
// above Nyquist, or non-positive, passes the signal through.
func NewLowpass(sampleRate int, cutoff float64) *Lowpass {
	lp := &Lowpass{alpha: 1}
	if sampleRate > 0 && cutoff > 0 && cutoff < float64(sampleRate)/2 {
		rc := 1.0 / (2.0 * math.Pi * cutoff)
		dt := 1.0 / float64(sampleRate)
		lp.alpha = dt / (rc + dt)
	}
	return lp
}

func (lp *Lowpass) Process(x float64) float64 {
	lp.y += lp.alpha * (x - lp.y)
	return lp.y
}

func (lp *Lowpass) Reset() { lp.y = 0 }
