package sonify

import (
	"errors"
	"testing"
)

func sweepParams(n int) []ParameterVector {
	out := make([]ParameterVector, n)
	for i := range out {
		out[i] = ParameterVector{
			Zoom:           1 + 0.02*float64(i),
			Rotation:       7 * float64(i),
			ColorIntensity: float64(i%10) / 10,
			PatternDensity: 1 - float64(i%10)/10,
			PanX:           0.002 * float64(i),
			PanY:           0.001 * float64(i),
		}
	}
	return out
}

func TestRenderIsReproducible(t *testing.T) {
	params := sweepParams(12)
	for _, name := range ModeNames() {
		t.Run(string(name), func(t *testing.T) {
			a, err := Render(name, params, DefaultSampleRate, DefaultDuration, 77)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			b, err := Render(name, params, DefaultSampleRate, DefaultDuration, 77)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if a.Len() < len(params)*2205 {
				t.Fatalf("render too short: %d samples", a.Len())
			}
			if Fingerprint(a) != Fingerprint(b) {
				t.Fatal("same seed rendered different audio")
			}
			if !a.Finite() {
				t.Fatal("render contains non-finite samples")
			}
		})
	}
}

func TestRenderSeedChangesDecoration(t *testing.T) {
	params := sweepParams(20)
	a, err := Render("default", params, DefaultSampleRate, DefaultDuration, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := Render("default", params, DefaultSampleRate, DefaultDuration, 2)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if Fingerprint(a) == Fingerprint(b) {
		t.Fatal("different seeds rendered identical audio")
	}
}

func TestRenderRejectsUnknownMode(t *testing.T) {
	if _, err := Render("techno", nil, DefaultSampleRate, DefaultDuration, 1); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	out, err := Render("rain", nil, DefaultSampleRate, DefaultDuration, 1)
	if err != nil || out.Len() != 0 || out.SampleRate != DefaultSampleRate {
		t.Fatalf("empty render = %d samples at %d Hz, err %v", out.Len(), out.SampleRate, err)
	}
}

func TestFingerprintSensitiveToSampleBits(t *testing.T) {
	a := ToneBuffer{Samples: []float64{0, 0.5}}
	b := ToneBuffer{Samples: []float64{0, 0.5000000001}}
	if Fingerprint(a) == Fingerprint(b) {
		t.Fatal("fingerprint ignored a sample change")
	}
}
