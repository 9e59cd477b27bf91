package effects

// Echo is a mono feedback delay line.
type Echo struct {
	buf      []float64
	pos      int
	feedback float64
	wet      float64
}

// NewEcho creates an echo.
// delaySec: delay time in seconds
// feedback: feedback amount 0..0.95
// wet: wet/dry mix 0..1
func NewEcho(sampleRate int, delaySec, feedback, wet float64) *Echo {
	samples := int(delaySec * float64(sampleRate))
	if samples < 1 {
		samples = 1
	}
	return &Echo{
		buf:      make([]float64, samples),
		feedback: clamp(feedback, 0, 0.95),
		wet:      clamp(wet, 0, 1),
	}
}

func (d *Echo) Process(x float64) float64 {
	del := d.buf[d.pos]
	d.buf[d.pos] = x + del*d.feedback
	d.pos++
	if d.pos >= len(d.buf) {
		d.pos = 0
	}
	return x*(1-d.wet) + del*d.wet
}

func (d *Echo) Reset() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.pos = 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
