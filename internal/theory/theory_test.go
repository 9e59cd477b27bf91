package theory

import (
	"errors"
	"math"
	"testing"
)

func testSet() ScaleSet {
	return ScaleSet{Major, NaturalMinor, Phrygian, Lydian, Mixolydian, HarmonicMinor, Dorian, MinorPentatonic, Locrian}
}

func TestNoteToFrequencyReference(t *testing.T) {
	for _, tc := range []struct {
		name   string
		octave int
		want   float64
	}{
		{"A", 4, 440},
		{"A", 5, 880},
		{"A", 3, 220},
		{"C", 4, 261.6255653005986},
		{"a", 4, 440},
	} {
		got, err := NoteToFrequency(tc.name, tc.octave)
		if err != nil {
			t.Fatalf("%s%d: %v", tc.name, tc.octave, err)
		}
		if math.Abs(got-tc.want) > 1e-6 {
			t.Fatalf("%s%d = %v, want %v", tc.name, tc.octave, got, tc.want)
		}
	}
}

func TestEnharmonicSpellingsMatch(t *testing.T) {
	pairs := [][2]string{{"C#", "Db"}, {"F#", "Gb"}, {"A#", "Bb"}, {"E#", "F"}, {"Cb", "B"}}
	for _, p := range pairs {
		a, err := NoteToFrequency(p[0], 4)
		if err != nil {
			t.Fatalf("%s: %v", p[0], err)
		}
		octave := 4
		if p[0] == "Cb" {
			octave = 3
		}
		b, err := NoteToFrequency(p[1], octave)
		if err != nil {
			t.Fatalf("%s: %v", p[1], err)
		}
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("%s=%v but %s=%v", p[0], a, p[1], b)
		}
	}
}

func TestUnknownNote(t *testing.T) {
	for _, name := range []string{"", "H", "X#", "C$", "do"} {
		if _, err := NoteToFrequency(name, 4); !errors.Is(err, ErrUnknownNote) {
			t.Errorf("%q: expected ErrUnknownNote, got %v", name, err)
		}
	}
}

func TestParseNote(t *testing.T) {
	name, octave, err := ParseNote("Eb5")
	if err != nil || name != "Eb" || octave != 5 {
		t.Fatalf("ParseNote(Eb5) = %q %d %v", name, octave, err)
	}
	name, octave, err = ParseNote("C#-1")
	if err != nil || name != "C#" || octave != -1 {
		t.Fatalf("ParseNote(C#-1) = %q %d %v", name, octave, err)
	}
	if _, octave, _ = ParseNote("G"); octave != 4 {
		t.Fatalf("default octave = %d, want 4", octave)
	}
	f, err := NoteNameToFrequency("A4")
	if err != nil || f != 440 {
		t.Fatalf("A4 = %v %v", f, err)
	}
}

func TestSelectScaleIndex(t *testing.T) {
	set := testSet()
	_, idx, err := SelectScale(set, 0)
	if err != nil || idx != 0 {
		t.Fatalf("zoom 0 -> %d %v", idx, err)
	}
	// floor(1.0*9) mod 9 = 0
	if _, idx, _ = SelectScale(set, 1.0); idx != 0 {
		t.Fatalf("zoom 1 -> %d", idx)
	}
	// floor(0.5*9)=4
	if _, idx, _ = SelectScale(set, 0.5); idx != 4 {
		t.Fatalf("zoom 0.5 -> %d", idx)
	}
}

func TestSelectScalePeriodic(t *testing.T) {
	set := testSet()
	for _, zoom := range []float64{0.05, 0.27, 0.5, 0.61, 0.93} {
		_, want, err := SelectScale(set, zoom)
		if err != nil {
			t.Fatal(err)
		}
		for k := 1; k <= 5; k++ {
			_, got, err := SelectScale(set, zoom+float64(k))
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("zoom %v+%d -> %d, want %d", zoom, k, got, want)
			}
		}
	}
}

func TestSelectScaleRejectsBadZoom(t *testing.T) {
	set := testSet()
	for _, zoom := range []float64{-0.1, math.NaN(), math.Inf(1), math.MaxFloat64} {
		if _, _, err := SelectScale(set, zoom); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("zoom %v: expected ErrInvalidParameter, got %v", zoom, err)
		}
	}
	if _, _, err := SelectScale(nil, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty set: expected ErrInvalidParameter, got %v", err)
	}
}

func TestTransposeWraps(t *testing.T) {
	for _, tc := range []struct {
		index, steps int
		want         string
		wantIdx      int
	}{
		{0, 1, "D", 1},
		{6, 1, "C", 0},
		{0, -1, "B", 6},
		{1, -2, "B", 6},
		{3, 14, "F", 3},
		{0, -15, "B", 6},
	} {
		name, idx := Major.Transpose(tc.index, tc.steps)
		if name != tc.want || idx != tc.wantIdx {
			t.Errorf("Transpose(%d,%d) = %s %d, want %s %d", tc.index, tc.steps, name, idx, tc.want, tc.wantIdx)
		}
	}
	if name, idx := (Scale{}).Transpose(3, 2); name != "" || idx != 0 {
		t.Errorf("empty scale transpose = %q %d", name, idx)
	}
}

func TestFoldOctave(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{440, 440},
		{3520, 880},
		{55, 110},
		{1760, 880},
		{-5, 110},
		{math.Inf(1), 110},
	} {
		got := FoldOctave(tc.in, 110, 1760)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("FoldOctave(%v) = %v, want %v", tc.in, got, tc.want)
		}
		if got < 110 || got >= 1760 {
			t.Errorf("FoldOctave(%v) = %v out of range", tc.in, got)
		}
	}
}

func TestBuiltinScalesResolve(t *testing.T) {
	all := []Scale{Major, NaturalMinor, Phrygian, Lydian, Mixolydian, HarmonicMinor, Dorian,
		MinorPentatonic, Locrian, PhrygianDominant, WholeTone, Hirajoshi}
	for _, s := range all {
		for _, n := range s.Notes {
			if _, err := NoteToFrequency(n, 4); err != nil {
				t.Errorf("%s: %v", s.Name, err)
			}
		}
	}
}
