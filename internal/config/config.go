// Package config reads the JSON settings file shared by the sonify binaries.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const defaultConfig = `
{
	"sampleRate": 44100,
	"duration": 0.1,
	"sink": "oto",
	"fps": 30,
	"seed": 0,
	"watchConfig": true,
	"mode": "default",
	"volume": 0.8,
	"muted": false
}
`

var ErrInvalidConfig = errors.New("invalid config")

// Sink names accepted in the "sink" field.
const (
	SinkOto       = "oto"
	SinkPortAudio = "portaudio"
	SinkEbiten    = "ebiten"
	SinkNone      = "none"
)

// StaticConfig is read once at startup; changing it needs a restart.
type StaticConfig struct {
	SampleRate  int     `json:"sampleRate"`
	Duration    float64 `json:"duration"`
	Sink        string  `json:"sink"`
	FPS         int     `json:"fps"`
	Seed        uint32  `json:"seed"` // 0 seeds from the clock
	WatchConfig bool    `json:"watchConfig"`
}

// DynamicConfig is re-applied every time the watched file changes.
type DynamicConfig struct {
	Mode   string  `json:"mode"`
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

type Config struct {
	StaticConfig
	DynamicConfig
}

// Default returns the built-in settings.
func Default() *Config {
	c, err := Parse([]byte(defaultConfig))
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes data on top of the defaults so missing fields keep them.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal([]byte(defaultConfig), &c); err != nil {
		return nil, fmt.Errorf("unmarshalling defaults: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshalling: %w", err)
	}
	return &c, nil
}

// Read loads p, writing the default config there first if it does not exist.
// ExpandPath resolves a leading ~ and environment variables in a config path.
func ExpandPath(p string) (string, error) {
	h, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("can't expand %s: %w", p, err)
	}
	return os.ExpandEnv(h), nil
}

func Read(p string) (*Config, error) {
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(p, []byte(defaultConfig), 0o644); err != nil {
			return nil, fmt.Errorf("can't write default config: %w", err)
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("can't read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sampleRate %d", ErrInvalidConfig, c.SampleRate)
	case !(c.Duration > 0) || math.IsInf(c.Duration, 0):
		return fmt.Errorf("%w: duration %v", ErrInvalidConfig, c.Duration)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	case math.IsNaN(c.Volume):
		return fmt.Errorf("%w: volume is NaN", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Sink) {
	case SinkOto, SinkPortAudio, SinkEbiten, SinkNone:
	default:
		return fmt.Errorf("%w: sink %q (expected oto|portaudio|ebiten|none)", ErrInvalidConfig, c.Sink)
	}
	return nil
}
