package envelope

import (
	"errors"
	"fmt"
	"math"
)

var ErrBufferTooShort = errors.New("buffer too short for envelope")

// Apply ramps samples linearly in from 0 over the first fade samples and out
// to 0 over the last fade samples, in place. fade is clamped to [0, len/2] so
// the two ramps never overlap.
func Apply(samples []float64, fade int) error {
	n := len(samples)
	if n < 2 {
		return fmt.Errorf("%w: %d samples", ErrBufferTooShort, n)
	}
	if fade > n/2 {
		fade = n / 2
	}
	if fade <= 0 {
		return nil
	}
	inv := 1.0 / float64(fade)
	for i := 0; i < fade; i++ {
		g := float64(i) * inv
		samples[i] *= g
		samples[n-1-i] *= g
	}
	return nil
}

// Samples converts a fade time in seconds to a sample count.
func Samples(sampleRate int, seconds float64) int {
	if sampleRate <= 0 || !(seconds > 0) || math.IsInf(seconds, 0) {
		return 0
	}
	return int(seconds * float64(sampleRate))
}

// Decay multiplies samples by exp(-i/tau), the shape of a plucked or dripped note.
func Decay(samples []float64, tau float64) {
	if !(tau > 0) {
		return
	}
	for i := range samples {
		samples[i] *= math.Exp(-float64(i) / tau)
	}
}
