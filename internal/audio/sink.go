package audio

import (
	"errors"

	goaudio "github.com/go-audio/audio"
)

var ErrSampleRateMismatch = errors.New("frames sample rate does not match the sink")

// Sink hands finished stereo frames to an output device. gain is the
// engine's volume in [0, 1]; implementations apply it at playback.
type Sink interface {
	Play(frames *goaudio.IntBuffer, gain float64) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(frames *goaudio.IntBuffer, gain float64) error

func (f SinkFunc) Play(frames *goaudio.IntBuffer, gain float64) error { return f(frames, gain) }

type discard struct{}

func (discard) Play(*goaudio.IntBuffer, float64) error { return nil }

// Discard accepts and drops everything. It is the engine's default sink.
var Discard Sink = discard{}

func checkRate(frames *goaudio.IntBuffer, sampleRate int) error {
	if frames == nil || frames.Format == nil || frames.Format.SampleRate == 0 {
		return nil
	}
	if frames.Format.SampleRate != sampleRate {
		return ErrSampleRateMismatch
	}
	return nil
}
