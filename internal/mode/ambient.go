package mode

import (
	"math"

	"github.com/cbegin/sonify-go/internal/lfo"
	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

// ambientNeuroMode holds a root drone with a slow binaural beat between two
// near-unison layers; density brings in the fifth.
//
// Draws: Float64 run (< 0.2).
type ambientNeuroMode struct {
	*Base
}

func newAmbientNeuro(cfg Config) Mode {
	return &ambientNeuroMode{Base: NewBase(AmbientNeuro, cfg, theory.ScaleSet{
		theory.Dorian,
		theory.NaturalMinor,
		theory.Lydian,
	})}
}

func (m *ambientNeuroMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: 0, Note: scale.Degree(0), Octave: 3})
	f, err := c.Frequency()
	if err != nil {
		return wave.Buffer{}, err
	}

	sr := m.cfg.SampleRate
	fsr := float64(sr)
	n := m.cfg.Samples()
	color := clamp01(p.ColorIntensity)
	density := clamp01(p.PatternDensity)
	beat := f * (1 + 0.004*color)
	trem := lfo.New(0.35, 0.25+0.5*saturate(p.Zoom), lfo.WaveSine)

	tone := wave.Buffer{Samples: make([]float64, n), SampleRate: sr}
	for i := range tone.Samples {
		t := float64(i) / fsr
		s := math.Sin(twoPi*f*t) +
			0.8*math.Sin(twoPi*beat*t) +
			0.6*density*math.Sin(twoPi*1.5*f*t)
		tone.Samples[i] = 0.12 * s * (0.65 + trem.Sample(fsr))
	}
	fade := n / 4
	if err := tone.Envelope(fade); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.2 {
		freqs, err := c.Run(3, c.Octave+1)
		if err != nil {
			return wave.Buffer{}, err
		}
		run, err := wave.Sequence(freqs, m.cfg.Duration/3, sr, 0.12, fadeSamples)
		if err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, run)
	}
	return finish(parts, fadeSamples)
}

// etherealMode is a bright, vibrato-laden partial stack whose degree follows
// rotation; color and density open the upper partials.
//
// Draws: Float64 chord (< 0.4).
type etherealMode struct {
	*Base
}

func newEthereal(cfg Config) Mode {
	return &etherealMode{Base: NewBase(EtherealAmbient, cfg, theory.ScaleSet{
		theory.Lydian,
		theory.Major,
		theory.WholeTone,
	})}
}

func (m *etherealMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	idx := degreeFromAngle(p.Rotation, scale)
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: idx, Note: scale.Degree(idx), Octave: 5})
	f, err := c.Frequency()
	if err != nil {
		return wave.Buffer{}, err
	}

	sr := m.cfg.SampleRate
	fsr := float64(sr)
	n := m.cfg.Samples()
	color := clamp01(p.ColorIntensity)
	density := clamp01(p.PatternDensity)
	vibrato := lfo.New(0.003, 5, lfo.WaveSine)

	tone := wave.Buffer{Samples: make([]float64, n), SampleRate: sr}
	var phase float64
	for i := range tone.Samples {
		s := math.Sin(phase) + 0.5*color*math.Sin(2*phase) + 0.25*density*math.Sin(3*phase)
		tone.Samples[i] = 0.1 * s
		phase += twoPi * f * (1 + vibrato.Sample(fsr)) / fsr
		if phase > twoPi {
			phase -= twoPi
		}
	}
	fade := n / 5
	if err := tone.Envelope(fade); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.4 {
		chord, err := c.Chord(theory.OpenFifth, 0.5, m.cfg.Duration, sr)
		if err != nil {
			return wave.Buffer{}, err
		}
		chord.Scale(0.12)
		if err := chord.Envelope(fade); err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, chord)
	}
	return finish(parts, fadeSamples)
}
