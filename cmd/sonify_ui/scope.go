package main

import (
	"image"
	"image/color"
	"math"
	"math/cmplx"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	fftSize    = 2048
	ringBufLen = 65536
)

type analyzer struct {
	mu         sync.Mutex
	sampleRate int
	ring       []float32
	writePos   int
}

func newAnalyzer(sampleRate int) *analyzer {
	return &analyzer{
		sampleRate: sampleRate,
		ring:       make([]float32, ringBufLen),
	}
}

// Tap is installed as the engine's sample tap. Keep it minimal: just copy into ring.
func (a *analyzer) Tap(samples []float64) {
	a.mu.Lock()
	for _, s := range samples {
		a.ring[a.writePos] = float32(s)
		a.writePos = (a.writePos + 1) % ringBufLen
	}
	a.mu.Unlock()
}

// Snapshot copies the n most recent samples.
func (a *analyzer) Snapshot(n int) []float32 {
	if n > ringBufLen {
		n = ringBufLen
	}
	out := make([]float32, n)
	a.mu.Lock()
	start := (a.writePos - n + ringBufLen) % ringBufLen
	for i := 0; i < n; i++ {
		out[i] = a.ring[(start+i)%ringBufLen]
	}
	a.mu.Unlock()
	return out
}

// fft computes a radix-2 FFT in-place.
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}
	bits := 0
	for m := n; m > 1; m >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := 0
		for b := 0; b < bits; b++ {
			if i&(1<<b) != 0 {
				j |= 1 << (bits - 1 - b)
			}
		}
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		wn := -2.0 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				t := cmplx.Rect(1, wn*float64(k)) * x[start+k+half]
				x[start+k+half] = x[start+k] - t
				x[start+k] = x[start+k] + t
			}
		}
	}
}

type scope struct {
	img      *ebiten.Image
	w, h     int
	specBins []float64
	wavePeak float64
}

func (s *scope) draw(screen *ebiten.Image, rect image.Rectangle, a *analyzer) {
	inner := image.Rect(rect.Min.X+8, rect.Min.Y+8, rect.Max.X-8, rect.Max.Y-8)
	width := inner.Dx()
	height := inner.Dy()
	if width <= 0 || height <= 0 {
		return
	}
	if s.img == nil || s.w != width || s.h != height {
		s.w = width
		s.h = height
		s.img = ebiten.NewImage(width, height)
	}
	s.img.Fill(color.RGBA{14, 16, 22, 255})

	snap := a.Snapshot(fftSize)

	waveH := int(float64(height) * 0.45)
	s.drawWaveform(snap, width, waveH)
	ebitenutil.DrawRect(s.img, 0, float64(waveH), float64(width), 1, color.RGBA{50, 54, 68, 180})
	specY := waveH + 1
	s.drawSpectrumBars(snap, width, height-specY, specY, a.sampleRate)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
	screen.DrawImage(s.img, op)
}

func (s *scope) drawWaveform(samples []float32, width int, height int) {
	if len(samples) < 2 || width < 2 || height < 4 {
		return
	}
	midY := height / 2
	ebitenutil.DrawRect(s.img, 0, float64(midY), float64(width), 1, color.RGBA{40, 44, 58, 100})

	// Auto-gain: track peak with fast attack, slow release.
	peak := float32(0)
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	target := math.Max(float64(peak), 0.01)
	if target > s.wavePeak {
		s.wavePeak = s.wavePeak*0.3 + target*0.7
	} else {
		s.wavePeak = s.wavePeak*0.995 + target*0.005
	}
	if s.wavePeak < 0.01 {
		s.wavePeak = 0.01
	}
	gain := float64(midY-2) / s.wavePeak

	triggerOffset := findZeroCrossing(samples, len(samples)/4)
	visible := len(samples) - triggerOffset
	if visible < 2 {
		visible = 2
	}
	waveColor := color.RGBA{80, 200, 255, 220}
	prevX := 0
	prevY := midY - int(float64(samples[triggerOffset])*gain)
	for px := 1; px < width; px++ {
		si := triggerOffset + px*visible/width
		if si >= len(samples) {
			si = len(samples) - 1
		}
		y := midY - int(float64(samples[si])*gain)
		ebitenutil.DrawLine(s.img, float64(prevX), float64(prevY), float64(px), float64(y), waveColor)
		prevX = px
		prevY = y
	}
}

// findZeroCrossing finds a rising zero-crossing in samples to stabilize the waveform display.
func findZeroCrossing(samples []float32, searchLen int) int {
	if searchLen > len(samples)-2 {
		searchLen = len(samples) - 2
	}
	for i := 1; i < searchLen; i++ {
		if samples[i-1] <= 0 && samples[i] > 0 {
			return i
		}
	}
	return 0
}

func (s *scope) drawSpectrumBars(samples []float32, width, height, yOffset, sampleRate int) {
	if len(samples) < fftSize || width < 4 || height < 4 {
		return
	}
	buf := make([]complex128, fftSize)
	for i := 0; i < fftSize; i++ {
		w := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(fftSize-1)))
		buf[i] = complex(float64(samples[len(samples)-fftSize+i])*w, 0)
	}
	fft(buf)

	numBars := min(max(width/3, 16), 256)
	if len(s.specBins) != numBars {
		s.specBins = make([]float64, numBars)
	}
	halfFFT := fftSize / 2
	maxBin := min(halfFFT*12000/(sampleRate/2), halfFFT)
	logMax := math.Log(float64(maxBin))

	for i := 0; i < numBars; i++ {
		binStart := int(math.Exp(float64(i) / float64(numBars) * logMax))
		binEnd := int(math.Exp(float64(i+1) / float64(numBars) * logMax))
		if binEnd <= binStart {
			binEnd = binStart + 1
		}
		if binEnd > halfFFT {
			binEnd = halfFFT
		}
		sum := 0.0
		for b := binStart; b < binEnd; b++ {
			sum += cmplx.Abs(buf[b])
		}
		avg := sum / float64(binEnd-binStart)

		db := 20.0 * math.Log10(avg/float64(fftSize)+1e-10)
		norm := clamp((db+80.0)/80.0, 0, 1)
		prev := s.specBins[i]
		if norm > prev {
			s.specBins[i] = prev*0.3 + norm*0.7
		} else {
			s.specBins[i] = prev*0.85 + norm*0.15
		}
	}

	barW := float64(width) / float64(numBars)
	for i, v := range s.specBins {
		barH := math.Max(v*float64(height-4), 1)
		x := float64(i) * barW
		y := float64(yOffset) + float64(height-2) - barH
		r, gr, b := spectrumColor(v)
		ebitenutil.DrawRect(s.img, x+1, y, barW-1, barH, color.RGBA{r, gr, b, 220})
	}
}

func spectrumColor(v float64) (uint8, uint8, uint8) {
	if v < 0.33 {
		t := v / 0.33
		return uint8(30 + 20*t), uint8(80 + 120*t), uint8(200 + 55*t)
	}
	if v < 0.66 {
		t := (v - 0.33) / 0.33
		return uint8(50 + 140*t), uint8(200 + 30*t), uint8(255 - 100*t)
	}
	t := (v - 0.66) / 0.34
	return uint8(190 + 65*t), uint8(230 - 100*t), uint8(155 - 100*t)
}
