package lfo

import "math"

// Waveform selects the modulator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSaw
	WaveSquare
)

// LFO is a low-frequency oscillator a mode uses for tremolo, vibrato and
// pulsation inside one buffer. It is not safe for concurrent use.
type LFO struct {
	depth    float64 // peak deviation; units depend on the caller (gain, ratio)
	rateHz   float64
	waveform Waveform
	phase    float64 // [0, 1)
}

// New returns an LFO starting at phase 0.
func New(depth, rateHz float64, waveform Waveform) *LFO {
	l := &LFO{}
	l.Set(depth, rateHz, waveform)
	return l
}

// Set configures the LFO. Unknown waveforms fall back to sine.
func (l *LFO) Set(depth, rateHz float64, waveform Waveform) {
	l.depth = depth
	l.rateHz = rateHz
	if waveform < WaveSine || waveform > WaveSquare {
		waveform = WaveSine
	}
	l.waveform = waveform
}

// Sample returns the current value in [-depth, +depth] and advances one sample.
// Returns 0 if depth, rate or sample rate is zero.
func (l *LFO) Sample(sampleRate float64) float64 {
	if l.depth == 0 || l.rateHz == 0 || sampleRate == 0 {
		return 0
	}
	v := shape(l.waveform, l.phase)
	l.phase += l.rateHz / sampleRate
	l.phase -= math.Floor(l.phase)
	return v * l.depth
}

// Fill writes consecutive samples into dst, each offset by bias.
func (l *LFO) Fill(dst []float64, sampleRate, bias float64) {
	for i := range dst {
		dst[i] = bias + l.Sample(sampleRate)
	}
}

func shape(w Waveform, phase float64) float64 {
	switch w {
	case WaveTriangle:
		if phase < 0.5 {
			return 4.0*phase - 1.0
		}
		return 3.0 - 4.0*phase
	case WaveSaw:
		return 1.0 - 2.0*phase
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Active returns true if the LFO has non-zero depth and rate.
func (l *LFO) Active() bool {
	return l.depth != 0 && l.rateHz != 0
}

// Reset zeros the LFO phase.
func (l *LFO) Reset() {
	l.phase = 0
}
