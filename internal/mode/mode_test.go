package mode

import (
	"errors"
	"math"
	"testing"

	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
)

const (
	testRate = 44100
	testDur  = 0.1
	testN    = 4410
)

// scripted replays fixed draws. Once a queue runs dry it returns 0.99 for
// Float64 (every branch declined) and 0 for Intn.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scripted) Intn(n int) int {
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

// noisy prefixes branch draws with count neutral noise draws.
func noisy(count int, branch ...float64) []float64 {
	out := make([]float64, count, count+len(branch))
	for i := range out {
		out[i] = 0.5
	}
	return append(out, branch...)
}

func nan() float64 { return math.NaN() }

func inf() float64 { return math.Inf(1) }

func newTestMode(t *testing.T, name Name) Mode {
	t.Helper()
	m, err := New(name, Config{SampleRate: testRate, Duration: testDur})
	if err != nil {
		t.Fatalf("new %s: %v", name, err)
	}
	return m
}

func TestBaseGenerateNotImplemented(t *testing.T) {
	b := NewBase("probe", Config{SampleRate: testRate, Duration: testDur}, theory.ScaleSet{theory.Major})
	if _, err := b.Generate(DefaultParams(), rng.New(1)); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
	if c := b.Center(); c.Note != "C" || c.Octave != 4 {
		t.Fatalf("initial center = %+v, want C4", c)
	}
}

func TestDefaultBranchLengths(t *testing.T) {
	cases := []struct {
		name   string
		floats []float64
		want   int
	}{
		{"base only", []float64{0.5, 0.9, 0.9, 0.9}, testN},
		{"step", []float64{0.5, 0.1, 0.9, 0.9}, 2 * testN},
		{"step and chord", []float64{0.5, 0.1, 0.1}, 3 * testN},
		{"chord", []float64{0.5, 0.9, 0.1}, 2 * testN},
		{"run of one", []float64{0.5, 0.9, 0.9, 0.1}, 2 * testN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMode(t, Default)
			// degree 0, octave 4, multiplier 1, rhythm 0.5, run length 1
			src := &scripted{floats: tc.floats, ints: []int{0, 1, 0, 2, 0, 0}}
			buf, err := m.Generate(DefaultParams(), src)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if buf.Len() != tc.want {
				t.Fatalf("len = %d, want %d", buf.Len(), tc.want)
			}
		})
	}
}

func TestDefaultCommitsTonalCenter(t *testing.T) {
	m := newTestMode(t, Default)
	p := DefaultParams()
	p.Zoom = 0
	if _, err := m.Generate(p, &scripted{ints: []int{2, 0}}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	c := m.Center()
	if c.Scale.Name != "major" || c.Note != "E" || c.Index != 2 || c.Octave != 3 {
		t.Fatalf("center = %+v, want E3 in major", c)
	}
}

func TestVariantBranchLengths(t *testing.T) {
	cases := []struct {
		name Name
		src  *scripted
		want int
	}{
		{Pulsating, &scripted{}, testN},
		{Pulsating, &scripted{floats: []float64{0.1}}, 2 * testN},
		{AmbientNeuro, &scripted{}, testN},
		{EtherealAmbient, &scripted{}, testN},
		{EtherealAmbient, &scripted{floats: []float64{0.1}}, 2 * testN},
		{MysticalForest, &scripted{floats: noisy(testN)}, testN},
		{MysticalForest, &scripted{floats: noisy(testN, 0.1, 0.1)}, testN + testN/2 + testN},
		{MysticalForest, &scripted{floats: noisy(testN, 0.9, 0.1)}, 2 * testN},
		{DesertNight, &scripted{floats: noisy(testN)}, testN},
		{DesertNight, &scripted{floats: noisy(testN, 0.1)}, testN + testN/2},
		{DesertNight, &scripted{floats: noisy(testN, 0.1, 0.1)}, 2 * testN},
		{AlienPlanet, &scripted{}, testN},
		{Rain, &scripted{floats: noisy(testN)}, testN},
		{Rain, &scripted{floats: noisy(testN, 0.01)}, testN + testN/2},
	}
	for _, tc := range cases {
		t.Run(string(tc.name), func(t *testing.T) {
			m := newTestMode(t, tc.name)
			buf, err := m.Generate(DefaultParams(), tc.src)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if buf.Len() != tc.want {
				t.Fatalf("len = %d, want %d", buf.Len(), tc.want)
			}
		})
	}
}

func TestAmbientNeuroRunExtendsBuffer(t *testing.T) {
	m := newTestMode(t, AmbientNeuro)
	buf, err := m.Generate(DefaultParams(), &scripted{floats: []float64{0.1}})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if buf.Len() <= testN {
		t.Fatalf("len = %d, want a run appended past %d", buf.Len(), testN)
	}
}

func TestPulsatingDegreeFollowsRotation(t *testing.T) {
	m := newTestMode(t, Pulsating)
	p := DefaultParams()
	p.Zoom = 0
	p.Rotation = 180
	if _, err := m.Generate(p, &scripted{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	// natural minor has 7 degrees; 180 degrees lands on index 3.
	if c := m.Center(); c.Index != 3 || c.Note != "F" {
		t.Fatalf("center = %+v, want degree 3 (F)", c)
	}
}

func TestAlienPlanetOctaveChoice(t *testing.T) {
	m := newTestMode(t, AlienPlanet)
	if _, err := m.Generate(DefaultParams(), &scripted{ints: []int{1, 2}}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if c := m.Center(); c.Index != 1 || c.Octave != 5 {
		t.Fatalf("center = %+v, want degree 1 octave 5", c)
	}
}

func TestAllModesDeterministicAndFinite(t *testing.T) {
	for _, name := range Names() {
		t.Run(string(name), func(t *testing.T) {
			a := newTestMode(t, name)
			b := newTestMode(t, name)
			p := Params{Zoom: 1.3, Rotation: 75, ColorIntensity: 0.9, PatternDensity: 0.8, PanX: -0.6}
			x, err := a.Generate(p, rng.New(42))
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			y, err := b.Generate(p, rng.New(42))
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if x.Len() != y.Len() {
				t.Fatalf("lengths differ: %d vs %d", x.Len(), y.Len())
			}
			for i := range x.Samples {
				if x.Samples[i] != y.Samples[i] {
					t.Fatalf("sample %d differs: %v vs %v", i, x.Samples[i], y.Samples[i])
				}
			}
			if !x.Finite() {
				t.Fatal("buffer has non-finite samples")
			}
			if x.Samples[0] != 0 || x.Samples[x.Len()-1] != 0 {
				t.Fatalf("edges not enveloped: %v .. %v", x.Samples[0], x.Samples[x.Len()-1])
			}
			if x.SampleRate != testRate {
				t.Fatalf("sample rate = %d", x.SampleRate)
			}
		})
	}
}

func TestRandomParamsStayFinite(t *testing.T) {
	src := rng.New(9)
	for _, name := range Names() {
		m := newTestMode(t, name)
		for i := 0; i < 200; i++ {
			p := Params{
				Zoom:           rng.Uniform(src, 0, 50),
				Rotation:       rng.Uniform(src, -720, 720),
				ColorIntensity: rng.Uniform(src, -1, 2),
				PatternDensity: rng.Uniform(src, -1, 2),
				PanX:           rng.Uniform(src, -3, 3),
				PanY:           rng.Uniform(src, -3, 3),
			}
			buf, err := m.Generate(p, src)
			if err != nil {
				t.Fatalf("%s %+v: %v", name, p, err)
			}
			if !buf.Finite() {
				t.Fatalf("%s %+v: non-finite output", name, p)
			}
		}
	}
}

func TestGenerateRejectsBadParams(t *testing.T) {
	m := newTestMode(t, Default)
	before := m.Center()
	for _, p := range []Params{
		{Zoom: -1},
		{Zoom: 1, Rotation: inf()},
		{Zoom: nan()},
	} {
		if _, err := m.Generate(p, rng.New(1)); !errors.Is(err, theory.ErrInvalidParameter) {
			t.Fatalf("%+v: expected ErrInvalidParameter, got %v", p, err)
		}
	}
	if after := m.Center(); after.Note != before.Note || after.Octave != before.Octave || after.Scale.Name != before.Scale.Name {
		t.Fatal("rejected call moved the tonal center")
	}
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Default, Config{SampleRate: 0, Duration: 0.1}); !errors.Is(err, theory.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := New("nope", Config{SampleRate: testRate, Duration: testDur}); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestParseName(t *testing.T) {
	cases := map[string]Name{
		"default":       Default,
		" Desert-Night": DesertNight,
		"ALIEN_PLANET":  AlienPlanet,
	}
	for in, want := range cases {
		got, err := ParseName(in)
		if err != nil || got != want {
			t.Fatalf("ParseName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseName("jazz"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if got := DesertNight.Label(); got != "Desert Night" {
		t.Fatalf("label = %q", got)
	}
	if len(Names()) != 8 {
		t.Fatalf("expected 8 modes, got %d", len(Names()))
	}
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams("zoom=2.5, rotation_angle=90,color=0.1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Zoom != 2.5 || p.Rotation != 90 || p.ColorIntensity != 0.1 || p.PatternDensity != 0.5 {
		t.Fatalf("params = %+v", p)
	}
	for _, bad := range []string{"zoom", "zoom=abc", "tempo=3"} {
		if _, err := ParseParams(bad); !errors.Is(err, theory.ErrInvalidParameter) {
			t.Fatalf("ParseParams(%q): expected ErrInvalidParameter, got %v", bad, err)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	for _, name := range Names() {
		b.Run(string(name), func(b *testing.B) {
			m, err := New(name, Config{SampleRate: testRate, Duration: testDur})
			if err != nil {
				b.Fatal(err)
			}
			src := rng.New(3)
			p := DefaultParams()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := m.Generate(p, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
