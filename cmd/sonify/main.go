package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cbegin/sonify-go"
	"github.com/cbegin/sonify-go/internal/audio"
	"github.com/cbegin/sonify-go/internal/audio/otosink"
	"github.com/cbegin/sonify-go/internal/config"
	"github.com/cbegin/sonify-go/internal/mode"
	"github.com/cbegin/sonify-go/internal/visual"
)

// The renderer only needs frame statistics, so it draws a thumbnail.
const (
	previewW = 80
	previewH = 60
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON config, created with defaults if not found")
		sampleRate = flag.Int("sample-rate", sonify.DefaultSampleRate, "output sample rate")
		duration   = flag.Float64("duration", sonify.DefaultDuration, "base tone length in seconds")
		modeName   = flag.String("mode", "default", "audio mode (see -list-modes)")
		volume     = flag.Float64("volume", 0.8, "output volume 0..1")
		muted      = flag.Bool("mute", false, "start muted")
		sinkName   = flag.String("sink", config.SinkOto, "audio output: oto|portaudio|none")
		fps        = flag.Int("fps", 30, "frames per second")
		seed       = flag.Uint("seed", 0, "random seed for decorations (0 = clock)")
		frames     = flag.Int("frames", 0, "stop after N frames (0 = run until interrupted)")
		paramsStr  = flag.String("params", "", "fixed parameter vector, e.g. zoom=1.5,rotation=30 (disables animation)")
		dryRun     = flag.Bool("dry-run", false, "render -frames tones offline and print a fingerprint")
		listModes  = flag.Bool("list-modes", false, "list audio modes and exit")
		quiet      = flag.Bool("quiet", false, "do not log substituted silence")
	)
	flag.Parse()

	if *listModes {
		for _, n := range sonify.ModeNames() {
			fmt.Printf("%-18s %s\n", n, n.Label())
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		p, err := config.ExpandPath(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		*configPath = p
		c, err := config.Read(p)
		if err != nil {
			log.Fatalf("can't read config %s: %v", *configPath, err)
		}
		cfg = c
	}
	// explicit flags override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sample-rate":
			cfg.SampleRate = *sampleRate
		case "duration":
			cfg.Duration = *duration
		case "mode":
			cfg.Mode = *modeName
		case "volume":
			cfg.Volume = *volume
		case "mute":
			cfg.Muted = *muted
		case "sink":
			cfg.Sink = *sinkName
		case "fps":
			cfg.FPS = *fps
		case "seed":
			cfg.Seed = uint32(*seed)
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var fixed *sonify.ParameterVector
	if *paramsStr != "" {
		p, err := mode.ParseParams(*paramsStr)
		if err != nil {
			log.Fatal(err)
		}
		fixed = &p
	}

	if *dryRun {
		if err := render(cfg, fixed, *frames); err != nil {
			log.Fatal(err)
		}
		return
	}

	sink, closer, err := openSink(cfg.Sink, cfg.SampleRate)
	if err != nil {
		log.Fatal(err)
	}
	if closer != nil {
		// ignore Close error
		defer closer.Close()
	}

	opts := []sonify.EngineOption{
		sonify.WithDuration(cfg.Duration),
		sonify.WithSink(sink),
		sonify.WithVolume(cfg.Volume),
	}
	if cfg.Seed != 0 {
		opts = append(opts, sonify.WithSeed(cfg.Seed))
	}
	if !*quiet {
		opts = append(opts, sonify.WithLogger(log.New(os.Stderr, "", log.LstdFlags)))
	}
	engine, err := sonify.NewEngine(cfg.SampleRate, opts...)
	if err != nil {
		log.Fatal(err)
	}
	if err := applyDynamic(engine, cfg.DynamicConfig); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("mode %s, volume %.2f, sink %s, %d Hz\n", engine.ModeName().Label(), engine.Volume(), cfg.Sink, cfg.SampleRate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.WatchConfig && *configPath != "" {
		configs := make(chan *config.Config)
		errs := make(chan error)
		done := make(chan struct{})
		defer close(done)
		if err := config.Watch(*configPath, configs, errs, done); err != nil {
			log.Fatalf("can't start watcher: %v", err)
		}
		g.Go(func() error {
			for {
				select {
				case c := <-configs:
					if err := applyDynamic(engine, c.DynamicConfig); err != nil {
						log.Printf("config: %v", err)
						continue
					}
					fmt.Printf("new conf: mode %s, volume %.2f, muted %v\n", engine.ModeName().Label(), engine.Volume(), engine.Muted())
				case err := <-errs:
					log.Printf("config: %v", err)
				case <-ctx.Done():
					return nil
				}
			}
		})
	}

	params := make(chan sonify.ParameterVector, 1)
	g.Go(func() error {
		defer close(params)
		return renderLoop(ctx, cfg.FPS, *frames, fixed, params)
	})
	g.Go(func() error {
		for p := range params {
			if _, err := engine.Frame(p); err != nil {
				return fmt.Errorf("play: %w", err)
			}
		}
		stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// renderLoop animates the view at fps and hands each frame's parameters to
// the audio goroutine. A frame is dropped if audio has not taken the last one.
func renderLoop(ctx context.Context, fps, limit int, fixed *sonify.ParameterVector, out chan<- sonify.ParameterVector) error {
	anim := visual.NewAnimator()
	img := image.NewRGBA(image.Rect(0, 0, previewW, previewH))
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for n := 0; limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		p := nextParams(anim, img, fixed)
		select {
		case out <- p:
		default:
		}
	}
	return nil
}

func nextParams(anim *visual.Animator, img *image.RGBA, fixed *sonify.ParameterVector) sonify.ParameterVector {
	if fixed != nil {
		return *fixed
	}
	anim.Step()
	return anim.Params(anim.Render(img))
}

// render prints a reproducible summary of the tones a run would play.
func render(cfg *config.Config, fixed *sonify.ParameterVector, frames int) error {
	if frames <= 0 {
		frames = cfg.FPS
	}
	name, err := mode.ParseName(cfg.Mode)
	if err != nil {
		return err
	}
	anim := visual.NewAnimator()
	img := image.NewRGBA(image.Rect(0, 0, previewW, previewH))
	params := make([]sonify.ParameterVector, frames)
	for i := range params {
		params[i] = nextParams(anim, img, fixed)
	}
	buf, err := sonify.Render(name, params, cfg.SampleRate, cfg.Duration, cfg.Seed)
	if err != nil {
		return err
	}
	fmt.Printf("mode %s, seed %d, %d frames\n", name.Label(), cfg.Seed, frames)
	fmt.Printf("%d samples (%.2fs), peak %.3f\n", buf.Len(), buf.Duration(), buf.Peak())
	fmt.Printf("sha256 %s\n", sonify.Fingerprint(buf))
	return nil
}

func applyDynamic(e *sonify.Engine, d config.DynamicConfig) error {
	if d.Mode != "" && !strings.EqualFold(string(e.ModeName()), d.Mode) {
		if err := e.SetMode(d.Mode); err != nil {
			return err
		}
	}
	e.SetVolume(d.Volume)
	if d.Muted {
		e.Mute()
	} else {
		e.Unmute()
	}
	return nil
}

func openSink(name string, sampleRate int) (sonify.Sink, io.Closer, error) {
	switch strings.ToLower(name) {
	case config.SinkOto:
		s, err := otosink.New(sampleRate)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.SinkPortAudio:
		return openPortAudio(sampleRate)
	case config.SinkNone:
		return audio.Discard, nil, nil
	case config.SinkEbiten:
		return nil, nil, fmt.Errorf("the ebiten sink needs a window; use sonify_ui")
	default:
		return nil, nil, fmt.Errorf("invalid sink %q (expected oto|portaudio|none)", name)
	}
}
