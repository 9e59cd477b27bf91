package mode

import (
	"math"

	"github.com/cbegin/sonify-go/internal/lfo"
	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

const breakSamples = 100

// pulsatingMode amplitude-modulates a harmonic tone whose pitch follows zoom
// and rotation. Rotation also picks the base degree.
//
// Draws, in order: Intn rhythmic-break position (only when color > 0.7),
// Float64 step (< 0.3 + 0.2*rotation/360) [+ Intn(4) step size].
type pulsatingMode struct {
	*Base
}

func newPulsating(cfg Config) Mode {
	return &pulsatingMode{Base: NewBase(Pulsating, cfg, theory.ScaleSet{
		theory.NaturalMinor,
		theory.Phrygian,
		theory.Lydian,
	})}
}

func (m *pulsatingMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	idx := degreeFromAngle(p.Rotation, scale)
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: idx, Note: scale.Degree(idx), Octave: 4})

	sr := m.cfg.SampleRate
	n := m.cfg.Samples()
	zn := saturate(p.Zoom)
	color := clamp01(p.ColorIntensity)
	density := clamp01(p.PatternDensity)
	rot := wrapDegrees(p.Rotation)

	freq := theory.FoldOctave(220+220*p.Zoom+p.Rotation, 110, 1760)
	depth := 0.5 + 0.5*zn
	pulse := lfo.New(depth, 2+10*zn+5*color, lfo.WaveSine)

	tone := wave.Buffer{Samples: make([]float64, n), SampleRate: sr}
	fsr := float64(sr)
	for i := range tone.Samples {
		t := float64(i) / fsr
		s := math.Sin(twoPi*freq*t) +
			density*math.Sin(twoPi*2*freq*t) +
			(1-density)*math.Sin(twoPi*3*freq*t)
		tone.Samples[i] = 0.2 * s * (depth + pulse.Sample(fsr))
	}

	if color > 0.7 && n > 2*breakSamples {
		at := n/2 + src.Intn(n-breakSamples-n/2)
		for i := at; i < at+breakSamples && i < n; i++ {
			tone.Samples[i] = 0
		}
	}
	if err := tone.Envelope(fadeSamples); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.3+0.2*(rot/360) {
		step := rng.Choice(src, melodicSteps)
		name, _ := c.Scale.Transpose(c.Index, step)
		next, err := noteTone(name, 4, m.cfg.Duration, sr, 0.3, fadeSamples)
		if err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, next)
	}
	return finish(parts, fadeSamples)
}
