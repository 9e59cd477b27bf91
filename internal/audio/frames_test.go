package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/cbegin/sonify-go/internal/wave"
)

func TestStereoDuplicatesAndClamps(t *testing.T) {
	buf := wave.Buffer{Samples: []float64{0, 0.5, -0.5, 2, -3, math.NaN()}, SampleRate: 44100}
	frames := Stereo(buf)
	if frames.Format.NumChannels != 2 || frames.Format.SampleRate != 44100 || frames.SourceBitDepth != 16 {
		t.Fatalf("unexpected format: %+v depth %d", *frames.Format, frames.SourceBitDepth)
	}
	want := []int{0, 16383, -16383, 32767, -32767, 0}
	if len(frames.Data) != 2*len(want) {
		t.Fatalf("data len = %d, want %d", len(frames.Data), 2*len(want))
	}
	for i, w := range want {
		l, r := frames.Data[2*i], frames.Data[2*i+1]
		if l != w || r != w {
			t.Fatalf("frame %d = (%d,%d), want %d on both channels", i, l, r, w)
		}
	}
	if frames.NumFrames() != len(want) {
		t.Fatalf("NumFrames = %d", frames.NumFrames())
	}
}

func TestBytesLittleEndian(t *testing.T) {
	frames := &goaudio.IntBuffer{Data: []int{1, -1, 40000}}
	b := Bytes(frames)
	if len(b) != 6 {
		t.Fatalf("len = %d", len(b))
	}
	got := []int16{
		int16(binary.LittleEndian.Uint16(b[0:])),
		int16(binary.LittleEndian.Uint16(b[2:])),
		int16(binary.LittleEndian.Uint16(b[4:])),
	}
	if got[0] != 1 || got[1] != -1 || got[2] != 32767 {
		t.Fatalf("decoded = %v", got)
	}
	if Bytes(nil) != nil {
		t.Fatal("nil frames should encode to nil")
	}
}

func TestFloat32AppliesGain(t *testing.T) {
	out := Float32(&goaudio.IntBuffer{Data: []int{32767, -32767, 0}}, 0.5)
	if math.Abs(float64(out[0])-0.5) > 1e-6 || math.Abs(float64(out[1])+0.5) > 1e-6 || out[2] != 0 {
		t.Fatalf("out = %v", out)
	}
}

func TestDiscardAndSinkFunc(t *testing.T) {
	if err := Discard.Play(Stereo(wave.Buffer{Samples: []float64{1}, SampleRate: 8000}), 1); err != nil {
		t.Fatalf("discard: %v", err)
	}
	var gotGain float64
	var s Sink = SinkFunc(func(_ *goaudio.IntBuffer, gain float64) error {
		gotGain = gain
		return nil
	})
	if err := s.Play(nil, 0.25); err != nil || gotGain != 0.25 {
		t.Fatalf("sink func: gain %v err %v", gotGain, err)
	}
}

func TestCheckRate(t *testing.T) {
	frames := Stereo(wave.Buffer{Samples: []float64{0}, SampleRate: 48000})
	if err := checkRate(frames, 48000); err != nil {
		t.Fatalf("matching rate: %v", err)
	}
	if err := checkRate(frames, 44100); !errors.Is(err, ErrSampleRateMismatch) {
		t.Fatalf("expected ErrSampleRateMismatch, got %v", err)
	}
	if err := checkRate(nil, 44100); err != nil {
		t.Fatalf("nil frames: %v", err)
	}
}
