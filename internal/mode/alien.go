package mode

import (
	"math"

	"github.com/cbegin/sonify-go/internal/effects"
	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

var (
	alienOctaves = []int{3, 4, 5}
	alienLeaps   = []int{-3, 3}
)

// alienPlanetMode is a two-operator FM voice, ring modulated as the view pans
// sideways and softly saturated.
//
// Draws, in order: Intn(len scale) degree, Intn(3) octave, Float64 leaps
// (< 0.35) [+ Intn(2) per leap, three leaps].
type alienPlanetMode struct {
	*Base
}

func newAlienPlanet(cfg Config) Mode {
	return &alienPlanetMode{Base: NewBase(AlienPlanet, cfg, theory.ScaleSet{
		theory.WholeTone,
		theory.Locrian,
		theory.Hirajoshi,
	})}
}

func (m *alienPlanetMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	idx := src.Intn(scale.Len())
	octave := rng.Choice(src, alienOctaves)
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: idx, Note: scale.Degree(idx), Octave: octave})
	f, err := c.Frequency()
	if err != nil {
		return wave.Buffer{}, err
	}

	sr := m.cfg.SampleRate
	fsr := float64(sr)
	n := m.cfg.Samples()
	ratio := 1.5 + 2*clamp01(p.PatternDensity)
	index := 0.5 + 2*clamp01(p.ColorIntensity)
	ringFreq := 30 + 300*saturate(p.Zoom)
	ringDepth := 0.5 * clamp01(math.Abs(p.PanX))
	shaper := effects.NewSaturator(1.5, 0.3)

	tone := wave.Buffer{Samples: make([]float64, n), SampleRate: sr}
	for i := range tone.Samples {
		t := float64(i) / fsr
		mod := math.Sin(twoPi * f * ratio * t)
		s := math.Sin(twoPi*f*t + index*mod)
		ring := 1 - ringDepth + ringDepth*math.Sin(twoPi*ringFreq*t)
		tone.Samples[i] = shaper.Process(s * ring)
	}
	if err := tone.Envelope(fadeSamples); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.35 {
		at := c.Index
		freqs := make([]float64, 0, 3)
		for k := 0; k < 3; k++ {
			var name string
			name, at = c.Scale.Transpose(at, rng.Choice(src, alienLeaps))
			lf, err := theory.NoteToFrequency(name, c.Octave)
			if err != nil {
				return wave.Buffer{}, err
			}
			freqs = append(freqs, lf)
		}
		run, err := wave.Sequence(freqs, m.cfg.Duration/3, sr, 0.2, fadeSamples/2)
		if err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, run)
	}
	return finish(parts, fadeSamples)
}
