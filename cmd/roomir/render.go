package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-roomir/acoustic/render"
	"github.com/cwbudde/algo-roomir/acoustic/space"
	"github.com/cwbudde/algo-roomir/internal/wavio"
)

type renderCmd struct {
	Scene string `arg:"" type:"existingfile" help:"Scene description (JSON)."`

	MaxBounces   int     `name:"max-bounces" default:"512" help:"Maximal reflections per path."`
	Samples      int     `default:"1024" help:"Rays traced per microphone and speaker."`
	SpeedOfSound float32 `name:"speed-of-sound" default:"343" help:"Speed of sound in scene units per second."`
	Gain         float64 `default:"1.0" help:"Gain applied before the limiter."`
	Threshold    float64 `default:"0.8" help:"Limiter threshold (linear)."`
	Release      float64 `default:"2.0" help:"Limiter release; decay per sample is sample rate times release."`
	SampleRate   int     `name:"sample-rate" default:"48000" help:"Output sample rate in Hz."`
	Output       string  `short:"o" default:"impulse_response_#.wav" help:"Output path; # is replaced by the microphone index."`
	Workers      int     `default:"0" help:"Concurrent traces (0 = GOMAXPROCS)."`
	Seed         uint64  `default:"0" help:"Seed for ray directions."`
	Deposit      string  `enum:"signed,differential" default:"signed" help:"Impulse deposit policy (signed, differential)."`
	Attenuation  string  `enum:"none,physical" default:"none" help:"Loudness model (none, physical)."`
	PCM          int     `name:"pcm" default:"0" help:"Write integer PCM with this many bytes per sample instead of float (1-3)."`
}

func (c *renderCmd) settings() render.Settings {
	return render.Settings{
		MaxBounces:          c.MaxBounces,
		Samples:             c.Samples,
		SpeedOfSound:        c.SpeedOfSound,
		CompressorGain:      c.Gain,
		CompressorThreshold: c.Threshold,
		CompressorRelease:   c.Release,
		SampleRate:          c.SampleRate,
		OutputPath:          c.Output,
		Workers:             c.Workers,
		Seed:                c.Seed,
		Deposit:             c.Deposit,
		Attenuation:         c.Attenuation,
	}
}

func (c *renderCmd) sink() render.Sink {
	if c.PCM == 0 {
		return wavio.WriteFile
	}
	return func(path string, samples []float64, sampleRate int) error {
		return wavio.WritePCMFile(path, samples, sampleRate, c.PCM)
	}
}

func (c *renderCmd) Run(log *slog.Logger, stdout io.Writer) error {
	settings := c.settings()
	if err := settings.Validate(); err != nil {
		return err
	}

	s, err := space.Load(c.Scene)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := render.All(ctx, s, settings, render.WithLogger(log), render.WithSink(c.sink()))

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		fmt.Fprintf(stdout, "microphone %d: %s (%d samples, RT60 %.3f s)\n", r.Microphone, r.Path, len(r.Samples), r.Metrics.RT60)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d microphones failed", failed, len(results))
	}
	return nil
}
