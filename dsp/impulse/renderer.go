package impulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-roomir/acoustic/space"
	"github.com/cwbudde/algo-roomir/dsp/buffer"
	"github.com/cwbudde/algo-roomir/dsp/dynamics"
	"github.com/cwbudde/algo-vecmath"
)

// SilenceThreshold is the magnitude at or below which trailing samples are
// trimmed by Render.
const SilenceThreshold = 1e-5

// headroom is the number of samples allocated past the last arrival's
// position so that a differential deposit at the last position stays in
// range.
const headroom = 2

// Errors returned by NewRenderer and Merge.
var (
	ErrInvalidSampleRate = errors.New("impulse: sample rate must be positive and finite")
	ErrIncompatible      = errors.New("impulse: renderers differ in sample rate or deposit policy")
)

// Deposit selects how one arrival is written into the buffer.
type Deposit int

const (
	// DepositSigned adds loudness * PhaseSign(bounces) at the arrival
	// position.
	DepositSigned Deposit = iota
	// DepositDifferential adds loudness at the arrival position and
	// subtracts it at the next one.
	DepositDifferential
)

// String implements fmt.Stringer.
func (d Deposit) String() string {
	switch d {
	case DepositSigned:
		return "signed"
	case DepositDifferential:
		return "differential"
	default:
		return fmt.Sprintf("Deposit(%d)", int(d))
	}
}

// ParseDeposit parses the String form of a Deposit.
func ParseDeposit(s string) (Deposit, error) {
	switch s {
	case "signed", "":
		return DepositSigned, nil
	case "differential":
		return DepositDifferential, nil
	default:
		return 0, fmt.Errorf("impulse: unknown deposit policy %q", s)
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDeposit selects the deposit policy. The default is DepositSigned.
func WithDeposit(d Deposit) Option {
	return func(r *Renderer) { r.deposit = d }
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// Renderer accumulates responses into an impulse response.
type Renderer struct {
	sampleRate   float64
	samplePeriod float64
	deposit      Deposit
	log          *slog.Logger

	buf     *buffer.Buffer
	batches int
}

// NewRenderer returns an empty Renderer at sampleRate Hz.
func NewRenderer(sampleRate float64, opts ...Option) (*Renderer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	r := &Renderer{
		sampleRate:   sampleRate,
		samplePeriod: 1 / sampleRate,
		log:          slog.New(slog.DiscardHandler),
		buf:          buffer.New(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// SampleRate returns the sample rate in Hz.
func (r *Renderer) SampleRate() float64 { return r.sampleRate }

// Deposit returns the deposit policy.
func (r *Renderer) Deposit() Deposit { return r.deposit }

// Len returns the current buffer length in samples.
func (r *Renderer) Len() int { return r.buf.Len() }

// Batches returns the number of non-empty batches added so far.
func (r *Renderer) Batches() int { return r.batches }

// Samples returns a copy of the accumulated buffer.
func (r *Renderer) Samples() []float64 { return r.buf.Copy() }

// AddResponses deposits one batch of responses.
//
// responses must be sorted by ascending Time; only the last element sizes
// the buffer. An empty batch is a no-op. AddResponses panics on a
// non-positive time, and on an unsorted batch whose earlier element lands
// past the buffer end.
func (r *Renderer) AddResponses(responses []space.Response) {
	if len(responses) == 0 {
		return
	}

	last := responses[len(responses)-1].Time
	if !(last > 0) {
		panic(fmt.Sprintf("impulse: response time %g is not positive", last))
	}

	required := int(math.Ceil(float64(last)/r.samplePeriod)) + headroom
	if required > r.buf.Len() {
		if r.log.Enabled(context.Background(), slog.LevelDebug) {
			r.log.Debug("growing impulse buffer", "from", r.buf.Len(), "to", required)
		}
		r.buf.GrowTo(required)
	}

	for _, resp := range responses {
		r.add(resp)
	}
	r.batches++
}

func (r *Renderer) add(resp space.Response) {
	if !(resp.Time > 0) {
		panic(fmt.Sprintf("impulse: response time %g is not positive", resp.Time))
	}

	pos := r.position(resp.Time)
	if pos+1 >= r.buf.Len() {
		panic(fmt.Sprintf("impulse: response at %gs lies past the buffer; batch not sorted by time", resp.Time))
	}

	loudness := float64(resp.Loudness)
	switch r.deposit {
	case DepositDifferential:
		r.buf.Add(pos, loudness)
		r.buf.Add(pos+1, -loudness)
	default:
		r.buf.Add(pos, loudness*float64(space.PhaseSign(resp.Bounces)))
	}
}

func (r *Renderer) position(t float32) int {
	return int(math.Floor(float64(t) / r.samplePeriod))
}

// Merge adds the buffer of other into r. Both renderers must share the
// sample rate and deposit policy. other is left unchanged.
func (r *Renderer) Merge(other *Renderer) error {
	if other.sampleRate != r.sampleRate || other.deposit != r.deposit {
		return ErrIncompatible
	}

	r.buf.GrowTo(other.buf.Len())
	vecmath.AddBlockInPlace(r.buf.Samples()[:other.buf.Len()], other.buf.Samples())
	r.batches += other.batches
	return nil
}

// Render returns the finished impulse response.
//
// The buffer is trimmed after its last sample with magnitude above
// SilenceThreshold. A copy scaled by gain is fed to the limiter as its
// input, and the limited result is written over the trimmed, un-gained
// copy, which is returned. An all-silent buffer renders to an empty slice.
func (r *Renderer) Render(gain float64, compressor dynamics.Compressor) []float64 {
	output := buffer.TrimTrailing(r.buf.Copy(), SilenceThreshold)

	input := make([]float64, len(output))
	vecmath.ScaleBlock(input, output, gain)

	if r.log.Enabled(context.Background(), slog.LevelDebug) {
		r.log.Debug("rendering impulse", "samples", len(output), "batches", r.batches)
	}

	compressor.Process(input, output)
	return output
}
