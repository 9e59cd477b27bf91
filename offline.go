package sonify

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/cbegin/sonify-go/internal/audio"
	"github.com/cbegin/sonify-go/internal/wave"
)

// Render generates one tone per parameter vector with a fixed seed and
// concatenates them. Nothing is played.
func Render(name ModeName, params []ParameterVector, sampleRate int, duration float64, seed uint32) (ToneBuffer, error) {
	e, err := NewEngine(sampleRate,
		WithMode(name),
		WithDuration(duration),
		WithSeed(seed),
		WithSink(audio.Discard),
	)
	if err != nil {
		return ToneBuffer{}, err
	}
	parts := make([]wave.Buffer, 0, len(params))
	for _, p := range params {
		parts = append(parts, e.GenerateTone(p))
	}
	out := wave.Concat(parts...)
	if out.SampleRate == 0 {
		out.SampleRate = sampleRate
	}
	return out, nil
}

// Fingerprint hashes the exact sample bits of buf.
func Fingerprint(buf ToneBuffer) string {
	h := sha256.New()
	var b [8]byte
	for _, s := range buf.Samples {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(s))
		h.Write(b[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
