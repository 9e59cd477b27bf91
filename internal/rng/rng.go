package rng

import "time"

// Source is the random stream a mode draws its decorative choices from.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n <= 0 returns 0.
	Intn(n int) int
}

// Mulberry32 is a small seeded generator producing reproducible sequences.
type Mulberry32 struct {
	state       uint32
	initialSeed uint32
}

func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed, initialSeed: seed}
}

// NewTimeSeeded seeds from the wall clock.
func NewTimeSeeded() *Mulberry32 {
	return New(uint32(time.Now().UnixNano()))
}

// Reset rewinds the generator to its initial seed.
func (r *Mulberry32) Reset() {
	r.state = r.initialSeed
}

func (r *Mulberry32) Seed() uint32 { return r.initialSeed }

func (r *Mulberry32) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

func (r *Mulberry32) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Choice returns one element of options drawn with Intn.
func Choice[T any](src Source, options []T) T {
	var zero T
	if len(options) == 0 {
		return zero
	}
	return options[src.Intn(len(options))]
}

// Uniform returns a value in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Signed returns a value in [-1, 1).
func Signed(src Source) float64 {
	return src.Float64()*2 - 1
}
