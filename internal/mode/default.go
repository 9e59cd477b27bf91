package mode

import (
	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

var (
	defaultOctaves     = []int{3, 4, 5}
	defaultOctaveMults = []float64{1, 2, 4}
	defaultRhythms     = []float64{0.25, 0.25, 0.5, 0.5, 0.5, 1}
)

// defaultMode plays a mellow scale tone, then maybe a neighbour step and
// either a triad or a short run.
//
// Draws, in order: Intn(len scale) degree, Intn(3) octave, Intn(3) octave
// multiplier, Intn(6) rhythm, Float64 octave jump (>= 0.9), Float64 step
// (< 0.5) [+ Intn(4) step size], Float64 chord (< 0.5) else Float64 run
// (< 0.25) [+ Intn(2) run length].
type defaultMode struct {
	*Base
}

func newDefault(cfg Config) Mode {
	return &defaultMode{Base: NewBase(Default, cfg, theory.ScaleSet{
		theory.Major,
		theory.NaturalMinor,
		theory.Phrygian,
		theory.Lydian,
		theory.Mixolydian,
		theory.HarmonicMinor,
		theory.Dorian,
		theory.MinorPentatonic,
		theory.Locrian,
	})}
}

func (m *defaultMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	idx := src.Intn(scale.Len())
	octave := rng.Choice(src, defaultOctaves)
	octaveMul := rng.Choice(src, defaultOctaveMults)
	rhythm := rng.Choice(src, defaultRhythms)
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: idx, Note: scale.Degree(idx), Octave: octave})

	sr := m.cfg.SampleRate
	segment := 2 * rhythm * m.cfg.Duration
	base, err := c.Frequency()
	if err != nil {
		return wave.Buffer{}, err
	}
	freq := base
	if src.Float64() >= 0.9 {
		freq *= 2
	}
	amp := 0.15 * (0.75 + 0.5*clamp01(p.ColorIntensity))
	tone, err := wave.SineTone(freq, segment, sr, amp)
	if err != nil {
		return wave.Buffer{}, err
	}
	overtone, err := wave.SineTone(2*freq, segment, sr, amp*0.25*clamp01(p.PatternDensity))
	if err != nil {
		return wave.Buffer{}, err
	}
	wave.Mix(tone, overtone, 0, 1)
	if err := tone.Envelope(fadeSamples); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.5 {
		step := rng.Choice(src, melodicSteps)
		next, _, err := c.Step(step, c.Octave)
		if err != nil {
			return wave.Buffer{}, err
		}
		seg, err := wave.SineTone(next, segment, sr, 0.3)
		if err != nil {
			return wave.Buffer{}, err
		}
		if err := seg.Envelope(fadeSamples); err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, seg)
	}

	if src.Float64() < 0.5 {
		chord, err := c.Chord(theory.MajorTriad, octaveMul, segment, sr)
		if err != nil {
			return wave.Buffer{}, err
		}
		chord.Scale(0.2)
		if err := chord.Envelope(fadeSamples); err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, chord)
	} else if src.Float64() < 0.25 {
		length := rng.Choice(src, []int{1, 2})
		freqs, err := c.Run(length, c.Octave)
		if err != nil {
			return wave.Buffer{}, err
		}
		run, err := wave.Sequence(freqs, segment, sr, 0.2, fadeSamples)
		if err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, run)
	}
	return finish(parts, fadeSamples)
}
