package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-roomir/acoustic/geom"
	"github.com/cwbudde/algo-roomir/acoustic/space"
	"github.com/cwbudde/algo-roomir/acoustic/tracer"
	"github.com/cwbudde/algo-roomir/dsp/impulse"
	"github.com/cwbudde/algo-roomir/internal/wavio"
	"github.com/cwbudde/algo-roomir/measure/ir"
)

// ErrNoSpeakers is returned when a scene has nothing to listen to.
var ErrNoSpeakers = errors.New("render: scene has no speakers")

// Sink stores one rendered impulse response.
type Sink func(path string, samples []float64, sampleRate int) error

// Option configures a render.
type Option func(*options)

type options struct {
	log  *slog.Logger
	sink Sink
}

// WithLogger sets the logger. It is passed on to the tracer and the
// impulse renderer.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSink replaces the default float WAV writer used by All.
func WithSink(s Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		log:  slog.New(slog.DiscardHandler),
		sink: wavio.WriteFile,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Result describes the render of one microphone.
type Result struct {
	Microphone space.MicrophoneIndex
	Path       string
	Samples    []float64
	Rays       int
	Responses  int
	Metrics    ir.Metrics
	Elapsed    time.Duration
	Err        error
}

// Microphone renders the impulse response heard at mic from every speaker
// in s. It does not write anything; Result.Path is empty.
func Microphone(ctx context.Context, s *space.Space, mic space.MicrophoneIndex, settings Settings, opts ...Option) (Result, error) {
	o := newOptions(opts)
	return renderMicrophone(ctx, s, mic, settings, o)
}

func renderMicrophone(ctx context.Context, s *space.Space, mic space.MicrophoneIndex, settings Settings, o options) (Result, error) {
	started := time.Now()
	res := Result{Microphone: mic}

	if err := settings.Validate(); err != nil {
		return res, err
	}
	if s.NumSpeakers() == 0 {
		return res, ErrNoSpeakers
	}
	// Fail on a bad handle before any goroutine starts.
	_ = s.Microphone(mic)

	cfg, _ := settings.TracerConfig()
	tr, err := tracer.New(s, cfg, tracer.WithLogger(o.log))
	if err != nil {
		return res, err
	}

	deposit, _ := impulse.ParseDeposit(settings.Deposit)
	acc, err := impulse.NewRenderer(float64(settings.SampleRate), impulse.WithDeposit(deposit), impulse.WithLogger(o.log))
	if err != nil {
		return res, err
	}

	for spk := range space.SpeakerIndex(s.NumSpeakers()) {
		batches, err := traceSpeaker(ctx, tr, mic, spk, settings)
		if err != nil {
			return res, fmt.Errorf("render: microphone %d, speaker %d: %w", mic, spk, err)
		}

		for _, responses := range batches {
			acc.AddResponses(responses)
			res.Responses += len(responses)
		}
		res.Rays += len(batches)
	}

	res.Samples = acc.Render(settings.CompressorGain, settings.Compressor())

	if len(res.Samples) > 0 {
		a, err := ir.NewAnalyzer(float64(settings.SampleRate))
		if err != nil {
			return res, err
		}
		if res.Metrics, err = a.Analyze(res.Samples); err != nil {
			return res, err
		}
	}

	res.Elapsed = time.Since(started)
	return res, nil
}

// traceSpeaker fans Settings.Samples traces out over the worker pool and
// returns their responses indexed by ray.
func traceSpeaker(ctx context.Context, tr *tracer.Tracer, mic space.MicrophoneIndex, spk space.SpeakerIndex, settings Settings) ([][]space.Response, error) {
	batches := make([][]space.Response, settings.Samples)

	workers := settings.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for ray := range batches {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dir := rayDirection(settings.Seed, mic, spk, ray)
			batches[ray] = tr.PerformTrace(mic, spk, dir).Responses
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancellation that raced the last Go call.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return batches, nil
}

// rayDirection returns the unit start direction of one ray.
func rayDirection(seed uint64, mic space.MicrophoneIndex, spk space.SpeakerIndex, ray int) geom.Vec2 {
	stream := uint64(mic)<<48 ^ uint64(spk)<<32 ^ uint64(ray)
	r := rand.New(rand.NewPCG(seed, stream))
	return geom.FromAngle(r.Float32() * 2 * math.Pi)
}

// All renders every microphone of s and stores each result at
// Settings.OutputPathFor(index) through the sink.
//
// A microphone that fails to render or store is logged and reported in its
// Result.Err; the remaining microphones are still rendered. A scene without
// speakers renders nothing.
func All(ctx context.Context, s *space.Space, settings Settings, opts ...Option) []Result {
	o := newOptions(opts)
	log := o.log.With("component", "render")

	log.Info("use settings", "settings", settings)
	log.Debug("model stats",
		"walls", s.NumWalls(),
		"microphones", s.NumMicrophones(),
		"speakers", s.NumSpeakers(),
	)

	if s.NumSpeakers() == 0 {
		log.Warn("scene has no speakers; nothing to render")
		return nil
	}
	if s.NumMicrophones() > 1 && settings.OutputPathFor(0) == settings.OutputPathFor(1) {
		log.Warn("output path has no placeholder; microphones overwrite each other",
			"path", settings.OutputPath, "placeholder", PathPlaceholder)
	}

	results := make([]Result, 0, s.NumMicrophones())
	for mic := range space.MicrophoneIndex(s.NumMicrophones()) {
		mlog := log.With("microphone", int(mic))

		res, err := renderMicrophone(ctx, s, mic, settings, o)
		if err != nil {
			mlog.Error("rendering microphone", "error", err)
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Path = settings.OutputPathFor(int(mic))
		mlog.Debug("writing wav", "path", res.Path)
		if err := o.sink(res.Path, res.Samples, settings.SampleRate); err != nil {
			mlog.Error("saving wav", "path", res.Path, "error", err)
			res.Err = err
		}

		mlog.Info("rendered impulse response",
			"rays", res.Rays,
			"responses", res.Responses,
			"samples", len(res.Samples),
			"rt60", res.Metrics.RT60,
			"c80", res.Metrics.C80,
			"elapsed", res.Elapsed,
		)
		results = append(results, res)
	}

	return results
}
