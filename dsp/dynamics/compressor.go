package dynamics

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Defaults used by the impulse renderer.
	DefaultSampleRate = 48000.0
	DefaultThreshold  = 0.8
	DefaultRelease    = 2.0
)

// Errors returned by Compressor.Validate.
var (
	ErrInvalidSampleRate = errors.New("dynamics: sample rate must be positive and finite")
	ErrInvalidThreshold  = errors.New("dynamics: threshold must be finite and not negative")
	ErrInvalidRelease    = errors.New("dynamics: release must be finite and not negative")
)

// Compressor configures a single-pass limiter.
//
// Release is not a time constant: the per-sample decay of the compression
// amount is SampleRate * Release, so the decay per sample grows with the
// sample rate.
type Compressor struct {
	SampleRate float64
	Threshold  float64 // linear amplitude above which gain reduction engages
	Release    float64
}

// DefaultCompressor returns the renderer's default configuration.
func DefaultCompressor() Compressor {
	return Compressor{
		SampleRate: DefaultSampleRate,
		Threshold:  DefaultThreshold,
		Release:    DefaultRelease,
	}
}

// Validate checks that all parameters are finite and in range.
func (c Compressor) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.Threshold < 0 || math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidThreshold, c.Threshold)
	}
	if c.Release < 0 || math.IsNaN(c.Release) || math.IsInf(c.Release, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidRelease, c.Release)
	}
	return nil
}

// ReleasePerSample returns the amount the compression decays each sample.
func (c Compressor) ReleasePerSample() float64 {
	return c.SampleRate * c.Release
}

// Process limits input into output in one causal pass.
//
// output[i] = input[i] * max(1 - compression, 0), where the compression is
// tracked as described in the package documentation. input and output must
// have equal length; Process panics otherwise. They may alias.
func (c Compressor) Process(input, output []float64) {
	if len(input) != len(output) {
		panic(fmt.Sprintf("dynamics: input length %d != output length %d", len(input), len(output)))
	}

	l := NewLimiter(c)
	for i, x := range input {
		output[i] = l.ProcessSample(x)
	}
}

// ProcessInPlace limits buf in place.
func (c Compressor) ProcessInPlace(buf []float64) {
	c.Process(buf, buf)
}
