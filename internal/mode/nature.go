package mode

import (
	"math"

	"github.com/cbegin/sonify-go/internal/effects"
	"github.com/cbegin/sonify-go/internal/envelope"
	"github.com/cbegin/sonify-go/internal/lfo"
	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

var neighbourSteps = []int{-1, 1}

// mysticalForestMode is a soft flute-like tone over filtered breath noise,
// sometimes answered by a bird chirp and a neighbouring note.
//
// Draws, in order: Intn(len scale) degree, one Float64 per sample of breath
// noise, Float64 chirp (< 0.3), Float64 step (< 0.5) [+ Intn(2) direction].
type mysticalForestMode struct {
	*Base
}

func newMysticalForest(cfg Config) Mode {
	return &mysticalForestMode{Base: NewBase(MysticalForest, cfg, theory.ScaleSet{
		theory.MinorPentatonic,
		theory.Dorian,
		theory.Hirajoshi,
	})}
}

func (m *mysticalForestMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	idx := src.Intn(scale.Len())
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: idx, Note: scale.Degree(idx), Octave: 4})
	f, err := c.Frequency()
	if err != nil {
		return wave.Buffer{}, err
	}

	sr := m.cfg.SampleRate
	fsr := float64(sr)
	n := m.cfg.Samples()
	breath := effects.NewLowpass(sr, 600+2400*clamp01(p.ColorIntensity))
	breathAmp := 0.05 * clamp01(p.PatternDensity)

	tone := wave.Buffer{Samples: make([]float64, n), SampleRate: sr}
	for i := range tone.Samples {
		ph := twoPi * f * float64(i) / fsr
		s := math.Sin(ph) + math.Sin(3*ph)/9 + math.Sin(5*ph)/25
		tone.Samples[i] = 0.15*s + breathAmp*breath.Process(rng.Signed(src))
	}
	if err := tone.Envelope(fadeSamples); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.3 {
		chirp, err := wave.Sweep(2*f, 3*f, m.cfg.Duration/2, sr, 0.15)
		if err != nil {
			return wave.Buffer{}, err
		}
		if err := chirp.Envelope(fadeSamples / 2); err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, chirp)
	}
	if src.Float64() < 0.5 {
		name, _ := c.Scale.Transpose(c.Index, rng.Choice(src, neighbourSteps))
		next, err := noteTone(name, c.Octave, m.cfg.Duration, sr, 0.15, fadeSamples)
		if err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, next)
	}
	return finish(parts, fadeSamples)
}

// desertNightMode sings a vibrato melody note over a root drone and desert
// wind, through a short echo. A step may be followed by a nested second step.
//
// Draws, in order: Intn(len scale) melody degree, one Float64 per sample of
// wind, Float64 step (< 0.5) [+ Intn(2) direction, Float64 nested step (< 0.25)].
type desertNightMode struct {
	*Base
}

func newDesertNight(cfg Config) Mode {
	return &desertNightMode{Base: NewBase(DesertNight, cfg, theory.ScaleSet{
		theory.PhrygianDominant,
		theory.HarmonicMinor,
		theory.Phrygian,
	})}
}

func (m *desertNightMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	idx := src.Intn(scale.Len())
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: idx, Note: scale.Degree(idx), Octave: 4})
	melody, err := c.Frequency()
	if err != nil {
		return wave.Buffer{}, err
	}
	drone, err := theory.NoteToFrequency(scale.Degree(0), 3)
	if err != nil {
		return wave.Buffer{}, err
	}

	sr := m.cfg.SampleRate
	fsr := float64(sr)
	n := m.cfg.Samples()
	color := clamp01(p.ColorIntensity)
	vibrato := lfo.New(0.005*(1+color), 4, lfo.WaveSine)
	wind := effects.NewLowpass(sr, 400)
	// Soft clip after the echo keeps feedback build-up under the melody's level.
	tail := effects.NewChain(
		effects.NewEcho(sr, 0.25*m.cfg.Duration, 0.3, 0.35),
		effects.NewSaturator(1.2, 0.9),
	)

	tone := wave.Buffer{Samples: make([]float64, n), SampleRate: sr}
	var phase float64
	for i := range tone.Samples {
		t := float64(i) / fsr
		s := 0.1*math.Sin(twoPi*drone*t) +
			0.15*math.Sin(phase) +
			0.04*color*wind.Process(rng.Signed(src))
		tone.Samples[i] = tail.Process(s)
		phase += twoPi * melody * (1 + vibrato.Sample(fsr)) / fsr
		if phase > twoPi {
			phase -= twoPi
		}
	}
	if err := tone.Envelope(fadeSamples); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.5 {
		dir := rng.Choice(src, neighbourSteps)
		name, at := c.Scale.Transpose(c.Index, dir)
		step, err := noteTone(name, c.Octave, m.cfg.Duration/2, sr, 0.15, fadeSamples)
		if err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, step)
		if src.Float64() < 0.25 {
			name, _ = c.Scale.Transpose(at, dir)
			nested, err := noteTone(name, c.Octave, m.cfg.Duration/2, sr, 0.15, fadeSamples)
			if err != nil {
				return wave.Buffer{}, err
			}
			parts = append(parts, nested)
		}
	}
	return finish(parts, fadeSamples)
}

// rainMode is filtered noise with scale-tuned droplet pings; rarely a loud
// burst of downpour follows.
//
// Draws, in order: Intn(len scale) degree, one Float64 per sample of rain,
// then per droplet Intn(n) position and Intn(len scale) degree offset,
// Float64 burst (< 0.03) [+ one Float64 per burst sample].
type rainMode struct {
	*Base
}

func newRain(cfg Config) Mode {
	return &rainMode{Base: NewBase(Rain, cfg, theory.ScaleSet{
		theory.MinorPentatonic,
		theory.NaturalMinor,
	})}
}

func (m *rainMode) Generate(p Params, src rng.Source) (wave.Buffer, error) {
	scale, si, err := m.begin(p)
	if err != nil {
		return wave.Buffer{}, err
	}
	idx := src.Intn(scale.Len())
	c := m.commit(TonalCenter{Scale: scale, ScaleIndex: si, Index: idx, Note: scale.Degree(idx), Octave: 6})

	sr := m.cfg.SampleRate
	n := m.cfg.Samples()
	density := clamp01(p.PatternDensity)
	lp := effects.NewLowpass(sr, 800+4000*density)
	amp := 0.15 + 0.15*clamp01(p.ColorIntensity)

	tone := wave.Buffer{Samples: make([]float64, n), SampleRate: sr}
	for i := range tone.Samples {
		tone.Samples[i] = rng.Signed(src)
	}
	effects.Apply(lp, tone.Samples)
	tone.Scale(amp)

	drops := 1 + int(7*density)
	for k := 0; k < drops; k++ {
		at := src.Intn(n)
		f, _, err := c.Step(src.Intn(scale.Len()), c.Octave)
		if err != nil {
			return wave.Buffer{}, err
		}
		ping, err := wave.SineTone(f, 0.015, sr, 0.1)
		if err != nil {
			return wave.Buffer{}, err
		}
		envelope.Decay(ping.Samples, 0.004*float64(sr))
		wave.Mix(tone, ping, at, 1)
	}
	if err := tone.Envelope(fadeSamples); err != nil {
		return wave.Buffer{}, err
	}
	parts := []wave.Buffer{tone}

	if src.Float64() < 0.03 {
		burst := wave.Noise(src, n/2, sr, 0.5)
		if err := burst.Envelope(fadeSamples); err != nil {
			return wave.Buffer{}, err
		}
		parts = append(parts, burst)
	}
	return finish(parts, fadeSamples)
}
