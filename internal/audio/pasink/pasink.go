//go:build portaudio

package pasink

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/gordonklaus/portaudio"

	"github.com/cbegin/sonify-go/internal/audio"
)

// Sink keeps one default output stream open and feeds it from a bounded queue.
type Sink struct {
	stream     *portaudio.Stream
	sampleRate int
	q          *queue
}

func New(sampleRate, queueLen int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("pasink: can't init portaudio: %w", err)
	}
	s := &Sink{sampleRate: sampleRate, q: newQueue(queueLen)}
	stream, err := portaudio.OpenDefaultStream(0, audio.Channels, float64(sampleRate), portaudio.FramesPerBufferUnspecified, s.q.fill)
	if err != nil {
		// ignore Terminate error
		portaudio.Terminate()
		return nil, fmt.Errorf("pasink: can't open default stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("pasink: can't start stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

func (s *Sink) Play(frames *goaudio.IntBuffer, gain float64) error {
	if frames != nil && frames.Format != nil && frames.Format.SampleRate != 0 && frames.Format.SampleRate != s.sampleRate {
		return fmt.Errorf("pasink: %w", audio.ErrSampleRateMismatch)
	}
	s.q.push(frames, gain)
	return nil
}

// Dropped counts tones discarded because the device fell behind.
func (s *Sink) Dropped() uint64 { return s.q.dropped.Load() }

func (s *Sink) Close() error {
	err := s.stream.Stop()
	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
