package theory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownNote      = errors.New("unknown note")
)

// A4 is the equal-temperament reference pitch.
const (
	A4Frequency = 440.0
	A4Midi      = 69
)

// Scale is an ordered list of note names (no octave) that a mode may use.
type Scale struct {
	Name  string
	Notes []string
}

// ScaleSet is the ordered pool of scales a mode selects from by zoom.
type ScaleSet []Scale

func (s Scale) Len() int { return len(s.Notes) }

// Index returns the degree of name in the scale, or -1.
func (s Scale) Index(name string) int {
	for i, n := range s.Notes {
		if n == name {
			return i
		}
	}
	return -1
}

// Degree returns the note at index, wrapping in both directions.
func (s Scale) Degree(index int) string {
	name, _ := s.Transpose(index, 0)
	return name
}

// Transpose moves steps degrees away from index, wrapping around the scale.
// Negative steps descend. An empty scale yields ("", 0).
func (s Scale) Transpose(index, steps int) (string, int) {
	n := len(s.Notes)
	if n == 0 {
		return "", 0
	}
	wrapped := ((index+steps)%n + n) % n
	return s.Notes[wrapped], wrapped
}

// SelectScale picks floor(zoom*len(set)) mod len(set).
func SelectScale(set ScaleSet, zoom float64) (Scale, int, error) {
	if len(set) == 0 {
		return Scale{}, 0, fmt.Errorf("%w: empty scale set", ErrInvalidParameter)
	}
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom < 0 {
		return Scale{}, 0, fmt.Errorf("%w: zoom %v", ErrInvalidParameter, zoom)
	}
	n := float64(len(set))
	pos := math.Floor(zoom * n)
	if math.IsInf(pos, 0) {
		return Scale{}, 0, fmt.Errorf("%w: zoom %v overflows", ErrInvalidParameter, zoom)
	}
	idx := int(math.Mod(pos, n))
	return set[idx], idx, nil
}

var pitchClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// PitchClass resolves a note name such as "F#" or "Bb" to semitones above C.
// The result may fall outside 0..11 for names like "Cb" or "B#".
func PitchClass(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownNote)
	}
	letter := name[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	pc, ok := pitchClasses[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}
	for _, acc := range name[1:] {
		switch acc {
		case '#':
			pc++
		case 'b':
			pc--
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
		}
	}
	return pc, nil
}

// MidiNumber returns the MIDI note for name in octave (C4 = 60).
func MidiNumber(name string, octave int) (int, error) {
	pc, err := PitchClass(name)
	if err != nil {
		return 0, err
	}
	return 12*(octave+1) + pc, nil
}

// MidiToFrequency converts a (possibly fractional) MIDI note to Hz.
func MidiToFrequency(note float64) float64 {
	return A4Frequency * math.Pow(2, (note-A4Midi)/12)
}

// NoteToFrequency converts a note name and octave to Hz, A4 = 440.
func NoteToFrequency(name string, octave int) (float64, error) {
	midi, err := MidiNumber(name, octave)
	if err != nil {
		return 0, err
	}
	return MidiToFrequency(float64(midi)), nil
}

// ParseNote splits "Eb4" or "C#-1" into name and octave. A missing octave means 4.
func ParseNote(full string) (string, int, error) {
	full = strings.TrimSpace(full)
	cut := len(full)
	for i := 1; i < len(full); i++ {
		c := full[i]
		if c == '-' || (c >= '0' && c <= '9') {
			cut = i
			break
		}
	}
	name := full[:cut]
	if _, err := PitchClass(name); err != nil {
		return "", 0, err
	}
	if cut == len(full) {
		return name, 4, nil
	}
	octave, err := strconv.Atoi(full[cut:])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownNote, full)
	}
	return name, octave, nil
}

// NoteNameToFrequency converts a full note name such as "C4" to Hz.
func NoteNameToFrequency(full string) (float64, error) {
	name, octave, err := ParseNote(full)
	if err != nil {
		return 0, err
	}
	return NoteToFrequency(name, octave)
}

// FoldOctave shifts f by whole octaves into [lo, hi). hi must be at least 2*lo.
// Non-positive or non-finite input returns lo.
func FoldOctave(f, lo, hi float64) float64 {
	if !(f > 0) || math.IsInf(f, 0) || lo <= 0 || hi < 2*lo {
		return lo
	}
	switch {
	case f >= hi:
		f /= math.Exp2(math.Floor(math.Log2(f/hi)) + 1)
	case f < lo:
		f *= math.Exp2(math.Ceil(math.Log2(lo / f)))
	}
	// Log2 rounding can land one octave off at the edges.
	if f >= hi {
		f /= 2
	}
	if f < lo {
		f *= 2
	}
	return f
}
