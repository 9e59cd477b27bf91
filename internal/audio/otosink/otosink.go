// Package otosink plays tones through an oto/v2 device context.
package otosink

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/hajimehoshi/oto/v2"

	"github.com/cbegin/sonify-go/internal/audio"
)

const pollInterval = 10 * time.Millisecond

// Sink starts a one-shot player per tone and closes it once drained.
type Sink struct {
	ctx        *oto.Context
	sampleRate int
	wg         sync.WaitGroup
}

// New opens the device and waits until it is ready.
func New(sampleRate int) (*Sink, error) {
	ctx, ready, err := oto.NewContext(sampleRate, audio.Channels, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("otosink: %w", err)
	}
	<-ready
	return &Sink{ctx: ctx, sampleRate: sampleRate}, nil
}

func (s *Sink) Play(frames *goaudio.IntBuffer, gain float64) error {
	if frames == nil || len(frames.Data) == 0 {
		return nil
	}
	if frames.Format != nil && frames.Format.SampleRate != 0 && frames.Format.SampleRate != s.sampleRate {
		return fmt.Errorf("otosink: %w", audio.ErrSampleRateMismatch)
	}
	data := audio.Bytes(frames)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		player := s.ctx.NewPlayer(bytes.NewReader(data))
		player.SetVolume(gain)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(pollInterval)
		}
		player.Close()
	}()
	return nil
}

// Close blocks until every queued tone has drained.
func (s *Sink) Close() error {
	s.wg.Wait()
	return nil
}
