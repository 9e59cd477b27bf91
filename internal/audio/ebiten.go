package audio

import (
	"fmt"
	"sync"

	goaudio "github.com/go-audio/audio"
	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// EbitenSink plays each tone on its own one-shot ebiten player. Finished
// players are closed on the next Play.
type EbitenSink struct {
	ctx *ebitaudio.Context

	mu     sync.Mutex
	active []*ebitaudio.Player
}

func NewEbitenSink(sampleRate int) (*EbitenSink, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &EbitenSink{ctx: ctx}, nil
}

func (s *EbitenSink) Play(frames *goaudio.IntBuffer, gain float64) error {
	if frames == nil || len(frames.Data) == 0 {
		return nil
	}
	if err := checkRate(frames, s.ctx.SampleRate()); err != nil {
		return fmt.Errorf("ebiten sink: %w", err)
	}
	pl := s.ctx.NewPlayerFromBytes(Bytes(frames))
	pl.SetVolume(gain)
	pl.Play()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.active = append(s.active, pl)
	return nil
}

// Playing reports how many tones are still sounding.
func (s *EbitenSink) Playing() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.active)
}

func (s *EbitenSink) sweep() {
	keep := s.active[:0]
	for _, pl := range s.active {
		if pl.IsPlaying() {
			keep = append(keep, pl)
			continue
		}
		_ = pl.Close()
	}
	for i := len(keep); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = keep
}

func (s *EbitenSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for _, pl := range s.active {
		pl.Pause()
		if err := pl.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.active = nil
	return first
}
