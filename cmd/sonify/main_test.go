package main

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/cbegin/sonify-go"
	"github.com/cbegin/sonify-go/internal/audio"
	"github.com/cbegin/sonify-go/internal/config"
	"github.com/cbegin/sonify-go/internal/visual"
)

func TestApplyDynamic(t *testing.T) {
	e, err := sonify.NewEngine(sonify.DefaultSampleRate, sonify.WithSeed(1))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := applyDynamic(e, config.DynamicConfig{Mode: "rain", Volume: 0.3, Muted: true}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if e.ModeName() != "rain" || e.Volume() != 0.3 || !e.Muted() {
		t.Fatalf("engine state: %s %v %v", e.ModeName(), e.Volume(), e.Muted())
	}
	if err := applyDynamic(e, config.DynamicConfig{Mode: "waltz"}); !errors.Is(err, sonify.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestNextParamsFixedOrAnimated(t *testing.T) {
	anim := visual.NewAnimator()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	fixed := sonify.ParameterVector{Zoom: 3, Rotation: 45}
	if got := nextParams(anim, img, &fixed); got != fixed {
		t.Fatalf("fixed params = %+v", got)
	}
	if anim.Frame != 0 {
		t.Fatal("fixed params should not advance the animation")
	}
	p := nextParams(anim, img, nil)
	if anim.Frame != 1 || p.Zoom != anim.Zoom {
		t.Fatalf("animated params = %+v, frame %d", p, anim.Frame)
	}
}

func TestRenderLoopStopsAfterLimit(t *testing.T) {
	out := make(chan sonify.ParameterVector, 8)
	if err := renderLoop(context.Background(), 200, 3, nil, out); err != nil {
		t.Fatalf("render loop: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("no frames produced")
	}
}

func TestOpenSink(t *testing.T) {
	s, c, err := openSink("none", sonify.DefaultSampleRate)
	if err != nil || s != audio.Discard || c != nil {
		t.Fatalf("none sink = %v, %v, %v", s, c, err)
	}
	if _, _, err := openSink("ebiten", sonify.DefaultSampleRate); err == nil {
		t.Fatal("expected the ebiten sink to be refused")
	}
	if _, _, err := openSink("tape", sonify.DefaultSampleRate); err == nil {
		t.Fatal("expected an error for an unknown sink")
	}
}
