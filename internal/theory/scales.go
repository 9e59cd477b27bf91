package theory

// All scales are rooted on C; modes transpose by picking degrees.
var (
	Major            = Scale{Name: "major", Notes: []string{"C", "D", "E", "F", "G", "A", "B"}}
	NaturalMinor     = Scale{Name: "natural minor", Notes: []string{"C", "D", "Eb", "F", "G", "Ab", "Bb"}}
	Phrygian         = Scale{Name: "phrygian", Notes: []string{"C", "Db", "Eb", "F", "G", "Ab", "Bb"}}
	Lydian           = Scale{Name: "lydian", Notes: []string{"C", "D", "E", "F#", "G", "A", "B"}}
	Mixolydian       = Scale{Name: "mixolydian", Notes: []string{"C", "D", "E", "F", "G", "A", "Bb"}}
	HarmonicMinor    = Scale{Name: "harmonic minor", Notes: []string{"C", "D", "Eb", "F", "G", "Ab", "B"}}
	Dorian           = Scale{Name: "dorian", Notes: []string{"C", "D", "Eb", "F", "G", "A", "Bb"}}
	MinorPentatonic  = Scale{Name: "minor pentatonic", Notes: []string{"C", "Eb", "F", "G", "Bb"}}
	Locrian          = Scale{Name: "locrian", Notes: []string{"C", "Db", "Eb", "F", "Gb", "Ab", "Bb"}}
	PhrygianDominant = Scale{Name: "phrygian dominant", Notes: []string{"C", "Db", "E", "F", "G", "Ab", "Bb"}}
	WholeTone        = Scale{Name: "whole tone", Notes: []string{"C", "D", "E", "F#", "G#", "A#"}}
	Hirajoshi        = Scale{Name: "hirajoshi", Notes: []string{"C", "D", "Eb", "G", "Ab"}}
)

// Triad intervals in semitones.
var (
	MajorTriad = []float64{0, 4, 7}
	OpenFifth  = []float64{0, 7, 12}
)
