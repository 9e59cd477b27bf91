// Package pasink streams tones to a PortAudio output. The device half needs
// the portaudio build tag and the native library; the queue builds anywhere.
package pasink

import (
	"sync/atomic"

	goaudio "github.com/go-audio/audio"

	"github.com/cbegin/sonify-go/internal/audio"
)

// DefaultQueueLen is how many tones may wait for the device.
const DefaultQueueLen = 4

// queue hands tones from the frame loop to the device callback. push never
// blocks: a full queue drops the tone.
type queue struct {
	ch      chan []float32
	pending []float32
	dropped atomic.Uint64
}

func newQueue(n int) *queue {
	if n <= 0 {
		n = DefaultQueueLen
	}
	return &queue{ch: make(chan []float32, n)}
}

func (q *queue) push(frames *goaudio.IntBuffer, gain float64) bool {
	if frames == nil || len(frames.Data) == 0 {
		return true
	}
	select {
	case q.ch <- audio.Float32(frames, gain):
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// fill copies queued samples into out and pads with silence. It is only
// called from the device callback.
func (q *queue) fill(out []float32) {
	for i := range out {
		if len(q.pending) == 0 {
			select {
			case q.pending = <-q.ch:
			default:
			}
		}
		if len(q.pending) == 0 {
			out[i] = 0
			continue
		}
		out[i] = q.pending[0]
		q.pending = q.pending[1:]
	}
}
