package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cbegin/sonify-go"
	"github.com/cbegin/sonify-go/internal/audio"
	"github.com/cbegin/sonify-go/internal/visual"
)

const (
	windowW    = 1000
	windowH    = 700
	minWindowW = 860
	minWindowH = 620
	tps        = 30

	// The fractal is rendered small and scaled up in Draw.
	viewW = 160
	viewH = 120
)

type game struct {
	engine   *sonify.Engine
	sink     *audio.EbitenSink
	analyzer *analyzer
	anim     *visual.Animator
	paint    *painter
	scope    scope

	frame    *image.RGBA
	frameImg *ebiten.Image
	stats    visual.Stats
	params   sonify.ParameterVector

	modes   []sonify.ModeName
	modeIdx int

	draggingVolume bool
	quit           bool

	status    string
	statusErr bool

	viewW int
	viewH int
}

func newGame(sampleRate int, duration float64, modeName string, volume float64, seed uint32) (*game, error) {
	sink, err := audio.NewEbitenSink(sampleRate)
	if err != nil {
		return nil, err
	}
	a := newAnalyzer(sampleRate)
	opts := []sonify.EngineOption{
		sonify.WithDuration(duration),
		sonify.WithSink(sink),
		sonify.WithVolume(volume),
		sonify.WithSampleTap(a.Tap),
		sonify.WithLogger(log.Default()),
	}
	if seed != 0 {
		opts = append(opts, sonify.WithSeed(seed))
	}
	e, err := sonify.NewEngine(sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	g := &game{
		engine:   e,
		sink:     sink,
		analyzer: a,
		anim:     visual.NewAnimator(),
		paint:    newPainter(),
		frame:    image.NewRGBA(image.Rect(0, 0, viewW, viewH)),
		frameImg: ebiten.NewImage(viewW, viewH),
		modes:    sonify.ModeNames(),
		status:   "Ready",
		viewW:    windowW,
		viewH:    windowH,
	}
	if err := g.selectMode(modeName); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *game) selectMode(name string) error {
	if err := g.engine.SetMode(name); err != nil {
		return err
	}
	for i, n := range g.modes {
		if n == g.engine.ModeName() {
			g.modeIdx = i
		}
	}
	g.setStatus("Mode: " + g.engine.ModeName().Label())
	return nil
}

func (g *game) cycleMode() {
	next := g.modes[(g.modeIdx+1)%len(g.modes)]
	if err := g.selectMode(string(next)); err != nil {
		g.setError(err.Error())
	}
}

func (g *game) toggleMute() {
	if g.engine.Muted() {
		g.engine.Unmute()
		g.setStatus("Unmuted")
		return
	}
	g.engine.Mute()
	g.setStatus("Muted")
}

func (g *game) Update() error {
	g.handleMouse()
	if g.quit {
		return ebiten.Termination
	}
	g.anim.Step()
	g.stats = g.anim.Render(g.frame)
	g.frameImg.WritePixels(g.frame.Pix)
	g.params = g.anim.Params(g.stats)
	if _, err := g.engine.Frame(g.params); err != nil {
		g.setError(err.Error())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	l := g.layoutRects()

	g.paint.darkPanel(screen, l.view)
	g.drawView(screen, l.view)
	g.paint.sunkenPanel(screen, l.info)
	g.drawInfo(screen, l.info)
	g.paint.darkPanel(screen, l.scope)
	g.scope.draw(screen, l.scope, g.analyzer)

	g.paint.button(screen, l.mode, g.engine.ModeName().Label(), false)
	muteLabel := "Mute"
	if g.engine.Muted() {
		muteLabel = "Unmute"
	}
	g.paint.button(screen, l.mute, muteLabel, g.engine.Muted())
	g.paint.button(screen, l.quit, "Quit", false)
	g.paint.slider(screen, l.volume, g.engine.Volume(), g.engine.Muted())

	g.paint.sunkenPanel(screen, l.status)
	g.drawStatus(screen, l.status)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	g.viewW = max(outsideW, minWindowW)
	g.viewH = max(outsideH, minWindowH)
	return g.viewW, g.viewH
}

func (g *game) Close() { _ = g.sink.Close() }

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	l := g.layoutRects()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case pointInRect(mx, my, l.mode):
			g.cycleMode()
			return
		case pointInRect(mx, my, l.mute):
			g.toggleMute()
			return
		case pointInRect(mx, my, l.quit):
			g.quit = true
			return
		case pointInRect(mx, my, l.volume):
			g.draggingVolume = true
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.draggingVolume = false
	}
	if g.draggingVolume {
		if v, ok := sliderValue(mx, l.volume); ok {
			g.engine.SetVolume(v)
			g.setStatus(fmt.Sprintf("Volume: %d%%", int(v*100+0.5)))
		}
	}
}

type uiLayout struct {
	view, info, scope image.Rectangle
	mode, mute, quit  image.Rectangle
	volume, status    image.Rectangle
}

func (g *game) layoutRects() uiLayout {
	w := max(g.viewW, minWindowW)
	h := max(g.viewH, minWindowH)

	pad := 20
	rowH := 44
	statusH := 40

	statusTop := h - pad - statusH
	controlsTop := statusTop - 8 - rowH
	contentBottom := controlsTop - 12

	// Left: fractal view at 4:3, right: parameter readout.
	vh := int(float64(contentBottom-pad) * 0.6)
	vw := vh * 4 / 3
	view := image.Rect(pad, pad, pad+vw, pad+vh)
	info := image.Rect(view.Max.X+12, pad, w-pad, view.Max.Y)
	scopeRect := image.Rect(pad, view.Max.Y+12, w-pad, contentBottom)

	mode := image.Rect(pad, controlsTop, pad+260, controlsTop+rowH)
	mute := image.Rect(mode.Max.X+12, controlsTop, mode.Max.X+142, controlsTop+rowH)
	quit := image.Rect(mute.Max.X+12, controlsTop, mute.Max.X+112, controlsTop+rowH)
	volume := image.Rect(quit.Max.X+12, controlsTop, w-pad, controlsTop+rowH)

	return uiLayout{
		view: view, info: info, scope: scopeRect,
		mode: mode, mute: mute, quit: quit,
		volume: volume, status: image.Rect(pad, statusTop, w-pad, statusTop+statusH),
	}
}

func (g *game) drawView(screen *ebiten.Image, rect image.Rectangle) {
	inner := rect.Inset(4)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(inner.Dx())/viewW, float64(inner.Dy())/viewH)
	op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
	screen.DrawImage(g.frameImg, op)
}

func (g *game) drawInfo(screen *ebiten.Image, rect image.Rectangle) {
	p := g.params
	c := g.engine.Center()
	lines := []string{
		fmt.Sprintf("zoom     %.3g", p.Zoom),
		fmt.Sprintf("pan      %+.3f %+.3f", p.PanX, p.PanY),
		fmt.Sprintf("rotation %.1f", p.Rotation),
		fmt.Sprintf("color    %.2f", p.ColorIntensity),
		fmt.Sprintf("edges    %.2f", p.PatternDensity),
		"",
		fmt.Sprintf("scale %s", c.Scale.Name),
		fmt.Sprintf("note  %s%d", c.Note, c.Octave),
		fmt.Sprintf("tones %d", g.sink.Playing()),
	}
	maxChars := max(8, (rect.Dx()-16)/charW)
	for i, s := range lines {
		g.paint.text(screen, shortenEnd(s, maxChars), rect.Min.X+8, rect.Min.Y+8+i*lineH)
	}
}

func (g *game) drawStatus(screen *ebiten.Image, rect image.Rectangle) {
	msg := "Status: " + g.status
	if g.statusErr {
		msg = "Status: ERROR - " + g.status
	}
	maxChars := max(8, (rect.Dx()-16)/charW)
	g.paint.text(screen, shortenEnd(msg, maxChars), rect.Min.X+8, rect.Min.Y+6)
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

func main() {
	var (
		modeName   = flag.String("mode", "default", "audio mode")
		volume     = flag.Float64("volume", 0.8, "output volume 0..1")
		seed       = flag.Uint("seed", 0, "random seed for decorations (0 = clock)")
		sampleRate = flag.Int("sample-rate", sonify.DefaultSampleRate, "output sample rate")
		duration   = flag.Float64("duration", sonify.DefaultDuration, "base tone length in seconds")
	)
	flag.Parse()

	g, err := newGame(*sampleRate, *duration, *modeName, *volume, uint32(*seed))
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("sonify-go")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
