package wave

import (
	"fmt"
	"math"

	"github.com/cbegin/sonify-go/internal/envelope"
	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
)

const twoPi = math.Pi * 2

// Buffer is a mono run of samples at a known rate.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

func (b Buffer) Len() int { return len(b.Samples) }

// Duration returns the length in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Finite reports whether every sample is a real number.
func (b Buffer) Finite() bool {
	for _, s := range b.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return false
		}
	}
	return true
}

// Peak returns the largest absolute sample.
func (b Buffer) Peak() float64 {
	var p float64
	for _, s := range b.Samples {
		if a := math.Abs(s); a > p {
			p = a
		}
	}
	return p
}

// Scale multiplies every sample by g in place and returns b.
func (b Buffer) Scale(g float64) Buffer {
	for i := range b.Samples {
		b.Samples[i] *= g
	}
	return b
}

// Envelope applies envelope.Apply to the samples.
func (b Buffer) Envelope(fade int) error {
	return envelope.Apply(b.Samples, fade)
}

// Silence returns a zeroed buffer of the given duration.
func Silence(duration float64, sampleRate int) Buffer {
	n := 0
	if duration > 0 && sampleRate > 0 && !math.IsInf(duration, 0) {
		n = int(duration * float64(sampleRate))
	}
	return Buffer{Samples: make([]float64, n), SampleRate: sampleRate}
}

// Concat joins segments into a fresh buffer. The rate of the first
// non-empty segment wins.
func Concat(segments ...Buffer) Buffer {
	total := 0
	rate := 0
	for _, s := range segments {
		total += len(s.Samples)
		if rate == 0 && s.SampleRate > 0 {
			rate = s.SampleRate
		}
	}
	out := make([]float64, 0, total)
	for _, s := range segments {
		out = append(out, s.Samples...)
	}
	return Buffer{Samples: out, SampleRate: rate}
}

func checkTone(freq, duration float64, sampleRate int) error {
	switch {
	case math.IsNaN(freq) || math.IsInf(freq, 0) || freq < 0:
		return fmt.Errorf("%w: frequency %v", theory.ErrInvalidParameter, freq)
	case math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0:
		return fmt.Errorf("%w: duration %v", theory.ErrInvalidParameter, duration)
	case sampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", theory.ErrInvalidParameter, sampleRate)
	}
	return nil
}

// SineTone renders amp*sin(2*pi*freq*t) for duration seconds.
func SineTone(freq, duration float64, sampleRate int, amp float64) (Buffer, error) {
	if err := checkTone(freq, duration, sampleRate); err != nil {
		return Buffer{}, err
	}
	n := int(duration * float64(sampleRate))
	out := make([]float64, n)
	sr := float64(sampleRate)
	for i := range out {
		t := float64(i) / sr
		out[i] = amp * math.Sin(twoPi*freq*t)
	}
	return Buffer{Samples: out, SampleRate: sampleRate}, nil
}

// Chord sums one unit sine per interval at base*2^(iv/12)*octaveMul.
// Voices are not attenuated; callers scale the result.
func Chord(base float64, intervals []float64, octaveMul, duration float64, sampleRate int) (Buffer, error) {
	if err := checkTone(base, duration, sampleRate); err != nil {
		return Buffer{}, err
	}
	out := Buffer{Samples: make([]float64, int(duration*float64(sampleRate))), SampleRate: sampleRate}
	for _, iv := range intervals {
		voice, err := SineTone(base*math.Pow(2, iv/12)*octaveMul, duration, sampleRate, 1)
		if err != nil {
			return Buffer{}, err
		}
		for i, s := range voice.Samples {
			out.Samples[i] += s
		}
	}
	return out, nil
}

// MelodicRun returns length consecutive scale-degree frequencies from start.
func MelodicRun(scale theory.Scale, start, length, octave int) ([]float64, error) {
	if scale.Len() == 0 {
		return nil, fmt.Errorf("%w: empty scale", theory.ErrInvalidParameter)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: run length %d", theory.ErrInvalidParameter, length)
	}
	out := make([]float64, 0, length)
	for i := 0; i < length; i++ {
		name, _ := scale.Transpose(start, i)
		f, err := theory.NoteToFrequency(name, octave)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Sequence plays freqs one after another, each segment seconds long and
// enveloped with fade samples.
func Sequence(freqs []float64, segment float64, sampleRate int, amp float64, fade int) (Buffer, error) {
	parts := make([]Buffer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := SineTone(f, segment, sampleRate, amp)
		if err != nil {
			return Buffer{}, err
		}
		if err := tone.Envelope(fade); err != nil {
			return Buffer{}, err
		}
		parts = append(parts, tone)
	}
	return Concat(parts...), nil
}

// Sweep glides linearly from one frequency to another with continuous phase.
func Sweep(from, to, duration float64, sampleRate int, amp float64) (Buffer, error) {
	if err := checkTone(from, duration, sampleRate); err != nil {
		return Buffer{}, err
	}
	if err := checkTone(to, duration, sampleRate); err != nil {
		return Buffer{}, err
	}
	n := int(duration * float64(sampleRate))
	out := make([]float64, n)
	var phase float64
	for i := range out {
		out[i] = amp * math.Sin(phase)
		f := from + (to-from)*float64(i)/float64(n)
		phase += twoPi * f / float64(sampleRate)
		if phase > twoPi {
			phase -= twoPi
		}
	}
	return Buffer{Samples: out, SampleRate: sampleRate}, nil
}

// Noise fills n samples of white noise in [-amp, amp) from src.
func Noise(src rng.Source, n int, sampleRate int, amp float64) Buffer {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * rng.Signed(src)
	}
	return Buffer{Samples: out, SampleRate: sampleRate}
}

// Mix adds src into dst starting at offset, clipped to dst's length.
func Mix(dst, src Buffer, offset int, gain float64) {
	for i, s := range src.Samples {
		j := offset + i
		if j < 0 {
			continue
		}
		if j >= len(dst.Samples) {
			return
		}
		dst.Samples[j] += gain * s
	}
}
