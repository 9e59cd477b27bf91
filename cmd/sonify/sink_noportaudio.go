//go:build !portaudio

package main

import (
	"errors"
	"io"

	"github.com/cbegin/sonify-go"
)

func openPortAudio(int) (sonify.Sink, io.Closer, error) {
	return nil, nil, errors.New("built without portaudio; rebuild with -tags portaudio")
}
