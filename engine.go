package sonify

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/cbegin/sonify-go/internal/audio"
	"github.com/cbegin/sonify-go/internal/envelope"
	"github.com/cbegin/sonify-go/internal/mode"
	"github.com/cbegin/sonify-go/internal/rng"
	"github.com/cbegin/sonify-go/internal/theory"
	"github.com/cbegin/sonify-go/internal/wave"
)

const (
	DefaultSampleRate = 44100
	DefaultDuration   = 0.1 // seconds
)

type (
	ParameterVector = mode.Params
	ToneBuffer      = wave.Buffer
	TonalCenter     = mode.TonalCenter
	Mode            = mode.Mode
	ModeName        = mode.Name
	RandSource      = rng.Source
	Sink            = audio.Sink
)

var (
	ErrInvalidParameter = theory.ErrInvalidParameter
	ErrUnknownNote      = theory.ErrUnknownNote
	ErrBufferTooShort   = envelope.ErrBufferTooShort
	ErrNotImplemented   = mode.ErrNotImplemented
	ErrUnknownMode      = mode.ErrUnknownMode
	ErrNonFinite        = errors.New("mode produced non-finite samples")
)

// DefaultParams returns the vector used when a renderer supplies nothing.
func DefaultParams() ParameterVector { return mode.DefaultParams() }

// ModeNames lists the built-in modes in display order.
func ModeNames() []ModeName { return mode.Names() }

type EngineOption func(*engineConfig)

type engineConfig struct {
	duration  float64
	mode      ModeName
	sink      Sink
	src       RandSource
	logger    *log.Logger
	sampleTap func([]float64)
	volume    float64
}

func defaultEngineConfig() engineConfig {
	return engineConfig{duration: DefaultDuration, mode: mode.Default, sink: audio.Discard, volume: 1}
}

// WithDuration sets the base segment length in seconds.
func WithDuration(seconds float64) EngineOption {
	return func(cfg *engineConfig) {
		cfg.duration = seconds
	}
}

func WithMode(name ModeName) EngineOption {
	return func(cfg *engineConfig) {
		cfg.mode = name
	}
}

func WithSink(sink Sink) EngineOption {
	return func(cfg *engineConfig) {
		if sink != nil {
			cfg.sink = sink
		}
	}
}

// WithSeed makes every decorative choice reproducible.
func WithSeed(seed uint32) EngineOption {
	return func(cfg *engineConfig) {
		cfg.src = rng.New(seed)
	}
}

// WithRandSource injects a custom random stream; it is only read while the
// engine holds its generation lock.
func WithRandSource(src RandSource) EngineOption {
	return func(cfg *engineConfig) {
		cfg.src = src
	}
}

// WithLogger reports tones replaced by silence.
func WithLogger(l *log.Logger) EngineOption {
	return func(cfg *engineConfig) {
		cfg.logger = l
	}
}

// WithSampleTap installs a callback invoked with each generated tone.
// The callback runs on the generating goroutine; keep work brief and
// do not retain the slice.
func WithSampleTap(tap func([]float64)) EngineOption {
	return func(cfg *engineConfig) {
		cfg.sampleTap = tap
	}
}

func WithVolume(v float64) EngineOption {
	return func(cfg *engineConfig) {
		cfg.volume = v
	}
}

// Engine turns parameter vectors into tones with the active mode and forwards
// them to a sink at the current volume.
type Engine struct {
	sampleRate int
	duration   float64
	sink       Sink
	logger     *log.Logger
	sampleTap  func([]float64)

	// genMu serializes Generate calls and mode swaps.
	genMu sync.Mutex
	mode  Mode
	src   RandSource

	mu     sync.Mutex
	volume float64
	muted  bool
}

func NewEngine(sampleRate int, opts ...EngineOption) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive", ErrInvalidParameter)
	}
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	m, err := mode.New(cfg.mode, mode.Config{SampleRate: sampleRate, Duration: cfg.duration})
	if err != nil {
		return nil, err
	}
	if cfg.src == nil {
		cfg.src = rng.NewTimeSeeded()
	}
	return &Engine{
		sampleRate: sampleRate,
		duration:   cfg.duration,
		sink:       cfg.sink,
		logger:     cfg.logger,
		sampleTap:  cfg.sampleTap,
		mode:       m,
		src:        cfg.src,
		volume:     clampVolume(cfg.volume),
	}, nil
}

func (e *Engine) SampleRate() int { return e.sampleRate }

func (e *Engine) Duration() float64 { return e.duration }

// GenerateTone always returns a playable buffer: mode errors and non-finite
// output become silence of one base segment.
func (e *Engine) GenerateTone(p ParameterVector) ToneBuffer {
	e.genMu.Lock()
	m := e.mode
	buf, err := m.Generate(p, e.src)
	e.genMu.Unlock()

	if err == nil && !buf.Finite() {
		err = ErrNonFinite
	}
	if err != nil {
		if e.logger != nil {
			e.logger.Printf("sonify: %s: substituting silence: %v", m.Name(), err)
		}
		buf = wave.Silence(e.duration, e.sampleRate)
	}
	if e.sampleTap != nil {
		e.sampleTap(buf.Samples)
	}
	return buf
}

// Play forwards buf to the sink as 16-bit stereo at the current volume.
// It does nothing while muted.
func (e *Engine) Play(buf ToneBuffer) error {
	e.mu.Lock()
	vol, muted := e.volume, e.muted
	e.mu.Unlock()
	if muted {
		return nil
	}
	frames := audio.Stereo(buf)
	if frames.Format.SampleRate == 0 {
		frames.Format.SampleRate = e.sampleRate
	}
	return e.sink.Play(frames, vol)
}

// Frame generates one tone for p and plays it.
func (e *Engine) Frame(p ParameterVector) (ToneBuffer, error) {
	buf := e.GenerateTone(p)
	return buf, e.Play(buf)
}

// SetVolume clamps v to [0, 1]. NaN is treated as 0.
func (e *Engine) SetVolume(v float64) {
	v = clampVolume(v)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = v
}

func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Engine) Mute() { e.setMuted(true) }

func (e *Engine) Unmute() { e.setMuted(false) }

func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

func (e *Engine) setMuted(m bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = m
}

// SetMode replaces the active mode with a fresh instance; the outgoing
// tonal center is discarded. Names are matched loosely ("Desert-Night").
func (e *Engine) SetMode(name string) error {
	n, err := mode.ParseName(name)
	if err != nil {
		return err
	}
	m, err := mode.New(n, mode.Config{SampleRate: e.sampleRate, Duration: e.duration})
	if err != nil {
		return err
	}
	return e.SwapMode(m)
}

// SwapMode installs a caller-built mode. It waits for any in-flight
// generation on the outgoing mode to finish.
func (e *Engine) SwapMode(m Mode) error {
	if m == nil {
		return fmt.Errorf("%w: nil mode", ErrInvalidParameter)
	}
	e.genMu.Lock()
	defer e.genMu.Unlock()
	e.mode = m
	return nil
}

func (e *Engine) ModeName() ModeName {
	e.genMu.Lock()
	defer e.genMu.Unlock()
	return e.mode.Name()
}

// Center returns the active mode's last committed tonal center.
func (e *Engine) Center() TonalCenter {
	e.genMu.Lock()
	m := e.mode
	e.genMu.Unlock()
	return m.Center()
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
