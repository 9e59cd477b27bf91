package mode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

var (
	ErrNotImplemented = errors.New("audio mode does not implement Generate")
	ErrUnknownMode    = errors.New("unknown audio mode")
)

// Name identifies an audio mode.
type Name string

const (
	Default         Name = "default"
	Pulsating       Name = "pulsating"
	AmbientNeuro    Name = "ambient_neuro"
	EtherealAmbient Name = "ethereal_ambient"
	MysticalForest  Name = "mystical_forest"
	DesertNight     Name = "desert_night"
	AlienPlanet     Name = "alien_planet"
	Rain            Name = "rain"
)

// Mode turns a parameter vector into one tone buffer. Implementations keep a
// mutable tonal center and are not safe for concurrent Generate calls; the
// engine serializes access.
type Mode interface {
	Name() Name
	Generate(p Params, src rng.Source) (wave.Buffer, error)
	Center() TonalCenter
}

// Config carries the device parameters a mode renders against.
type Config struct {
	SampleRate int
	Duration   float64 // seconds of the base segment
}

func (c Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", theory.ErrInvalidParameter, c.SampleRate)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration %v", theory.ErrInvalidParameter, c.Duration)
	}
	return nil
}

// Samples returns the length of one base segment.
func (c Config) Samples() int {
	return int(c.Duration * float64(c.SampleRate))
}

// Params is the per-frame snapshot of visual state.
type Params struct {
	Zoom           float64
	Rotation       float64 // degrees
	ColorIntensity float64 // 0..1
	PatternDensity float64 // 0..1
	PanX           float64
	PanY           float64
}

func DefaultParams() Params {
	return Params{Zoom: 1, Rotation: 0, ColorIntensity: 0.5, PatternDensity: 0.5}
}

// Validate rejects non-finite fields. Range checks belong to the consumers.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"zoom", p.Zoom},
		{"rotation", p.Rotation},
		{"color_intensity", p.ColorIntensity},
		{"pattern_density", p.PatternDensity},
		{"pan_x", p.PanX},
		{"pan_y", p.PanY},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", theory.ErrInvalidParameter, f.name, f.v)
		}
	}
	return nil
}

// ParamsFromMap builds Params from a partial set of named fields. Missing
// fields keep their defaults; unknown names are rejected.
func ParamsFromMap(fields map[string]float64) (Params, error) {
	p := DefaultParams()
	for k, v := range fields {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "zoom", "zoom_level":
			p.Zoom = v
		case "rotation", "rotation_angle":
			p.Rotation = v
		case "color", "color_intensity":
			p.ColorIntensity = v
		case "density", "pattern_density":
			p.PatternDensity = v
		case "pan_x", "panx":
			p.PanX = v
		case "pan_y", "pany":
			p.PanY = v
		default:
			return Params{}, fmt.Errorf("%w: unknown field %q", theory.ErrInvalidParameter, k)
		}
	}
	return p, nil
}

// ParseParams parses "zoom=1.5,rotation=30" into Params.
func ParseParams(s string) (Params, error) {
	fields := map[string]float64{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return Params{}, fmt.Errorf("%w: expected key=value, got %q", theory.ErrInvalidParameter, part)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %s: %v", theory.ErrInvalidParameter, k, err)
		}
		fields[k] = f
	}
	return ParamsFromMap(fields)
}

// TonalCenter is the scale and base note a mode's decorations build from.
type TonalCenter struct {
	Scale      theory.Scale
	ScaleIndex int // position in the mode's scale set
	Index      int // degree of Note within Scale
	Note       string
	Octave     int
}

// Frequency returns the base note's pitch.
func (c TonalCenter) Frequency() (float64, error) {
	return theory.NoteToFrequency(c.Note, c.Octave)
}

// Step returns the pitch steps degrees away in the same octave and its index.
func (c TonalCenter) Step(steps, octave int) (float64, int, error) {
	name, idx := c.Scale.Transpose(c.Index, steps)
	f, err := theory.NoteToFrequency(name, octave)
	return f, idx, err
}

// Chord stacks intervals on the base note.
func (c TonalCenter) Chord(intervals []float64, octaveMul, duration float64, sampleRate int) (wave.Buffer, error) {
	base, err := c.Frequency()
	if err != nil {
		return wave.Buffer{}, err
	}
	return wave.Chord(base, intervals, octaveMul, duration, sampleRate)
}

// Run climbs length degrees from the base note.
func (c TonalCenter) Run(length, octave int) ([]float64, error) {
	return wave.MelodicRun(c.Scale, c.Index, length, octave)
}

// Base holds the state every mode shares. Its Generate is a placeholder that
// variants replace.
type Base struct {
	name   Name
	scales theory.ScaleSet
	cfg    Config

	mu     sync.Mutex
	center TonalCenter
}

// NewBase returns a Base whose tonal center starts on degree 0 of the first scale.
func NewBase(name Name, cfg Config, scales theory.ScaleSet) *Base {
	b := &Base{name: name, scales: scales, cfg: cfg}
	if len(scales) > 0 {
		b.center = TonalCenter{Scale: scales[0], Note: scales[0].Degree(0), Octave: 4}
	}
	return b
}

func (b *Base) Name() Name { return b.name }

func (b *Base) Config() Config { return b.cfg }

func (b *Base) Scales() theory.ScaleSet { return b.scales }

func (b *Base) Generate(Params, rng.Source) (wave.Buffer, error) {
	return wave.Buffer{}, fmt.Errorf("%s: %w", b.name, ErrNotImplemented)
}

// Center returns a copy of the last committed tonal center.
func (b *Base) Center() TonalCenter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.center
}

// begin validates p and picks this call's scale from the zoom level.
func (b *Base) begin(p Params) (theory.Scale, int, error) {
	if err := p.Validate(); err != nil {
		return theory.Scale{}, 0, err
	}
	if err := b.cfg.validate(); err != nil {
		return theory.Scale{}, 0, err
	}
	return theory.SelectScale(b.scales, p.Zoom)
}

// commit overwrites the tonal center and returns the value the rest of the
// call must use.
func (b *Base) commit(c TonalCenter) TonalCenter {
	b.mu.Lock()
	b.center = c
	b.mu.Unlock()
	return c
}

var order = []Name{Default, Pulsating, AmbientNeuro, EtherealAmbient, MysticalForest, DesertNight, AlienPlanet, Rain}

var constructors = map[Name]func(Config) Mode{
	Default:         newDefault,
	Pulsating:       newPulsating,
	AmbientNeuro:    newAmbientNeuro,
	EtherealAmbient: newEthereal,
	MysticalForest:  newMysticalForest,
	DesertNight:     newDesertNight,
	AlienPlanet:     newAlienPlanet,
	Rain:            newRain,
}

// Names lists the built-in modes in display order.
func Names() []Name {
	return append([]Name(nil), order...)
}

// ParseName resolves a user-supplied mode name ("Desert-Night" works).
func ParseName(s string) (Name, error) {
	n := Name(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := constructors[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return n, nil
}

// New builds a fresh mode with its default tonal center.
func New(name Name, cfg Config) (Mode, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return ctor(cfg), nil
}

// Label returns a human-readable mode name.
func (n Name) Label() string {
	words := strings.Split(string(n), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
