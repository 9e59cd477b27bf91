package effects

import "math"

// Saturator is tanh waveshaping with pre and post gain.
type Saturator struct {
	preGain  float64
	postGain float64
}

func NewSaturator(preGain, postGain float64) *Saturator {
	return &Saturator{preGain: preGain, postGain: postGain}
}

func (s *Saturator) Process(x float64) float64 {
	return math.Tanh(x*s.preGain) * s.postGain
}

func (s *Saturator) Reset() {}
