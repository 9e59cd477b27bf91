//go:build portaudio

package main

import (
	"io"

	"github.com/cbegin/sonify-go"
	"github.com/cbegin/sonify-go/internal/audio/pasink"
)

func openPortAudio(sampleRate int) (sonify.Sink, io.Closer, error) {
	s, err := pasink.New(sampleRate, pasink.DefaultQueueLen)
	if err != nil {
		return nil, nil, err
	}
	return s, s, nil
}
