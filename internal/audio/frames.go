package audio

import (
	"encoding/binary"
	"math"

	goaudio "github.com/go-audio/audio"

	"github.com/cbegin/sonify-go/internal/wave"
)

const (
	Channels = 2
	BitDepth = 16

	fullScale = 32767
)

// Stereo converts a mono tone to interleaved 16-bit stereo frames. Samples
// are clamped to [-1, 1] before scaling; NaN becomes silence.
func Stereo(buf wave.Buffer) *goaudio.IntBuffer {
	out := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: Channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           make([]int, len(buf.Samples)*Channels),
		SourceBitDepth: BitDepth,
	}
	for i, s := range buf.Samples {
		v := toInt16(s)
		out.Data[i*Channels] = v
		out.Data[i*Channels+1] = v
	}
	return out
}

func toInt16(s float64) int {
	switch {
	case math.IsNaN(s):
		return 0
	case s > 1:
		s = 1
	case s < -1:
		s = -1
	}
	return int(s * fullScale)
}

// Bytes encodes frames as signed 16-bit little-endian PCM.
func Bytes(frames *goaudio.IntBuffer) []byte {
	if frames == nil {
		return nil
	}
	out := make([]byte, len(frames.Data)*2)
	for i, v := range frames.Data {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(clampInt(v))))
	}
	return out
}

// Float32 converts frames to interleaved float32 scaled by gain.
func Float32(frames *goaudio.IntBuffer, gain float64) []float32 {
	if frames == nil {
		return nil
	}
	out := make([]float32, len(frames.Data))
	for i, v := range frames.Data {
		out[i] = float32(float64(clampInt(v)) / fullScale * gain)
	}
	return out
}

func clampInt(v int) int {
	if v > fullScale {
		return fullScale
	}
	if v < -fullScale {
		return -fullScale
	}
	return v
}
