package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyResponse    = errors.New("conv: empty impulse response")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
	ErrInvalidMix       = errors.New("conv: mix must be in [0, 1]")
)

// directThreshold is the longest impulse response Convolve handles in the
// time domain.
const directThreshold = 64

// Direct convolves signal with ir in the time domain.
// The result has length len(signal) + len(ir) - 1.
func Direct(signal, ir []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}

	out := make([]float64, len(signal)+len(ir)-1)
	DirectTo(out, signal, ir)
	return out, nil
}

// DirectTo convolves into dst, which must have length
// len(signal) + len(ir) - 1. dst is overwritten.
func DirectTo(dst, signal, ir []float64) {
	clear(dst)

	scaled := make([]float64, len(ir))
	for i, x := range signal {
		if x == 0 {
			continue
		}
		vecmath.ScaleBlock(scaled, ir, x)
		vecmath.AddBlockInPlace(dst[i:i+len(ir)], scaled)
	}
}

// Convolve returns the full linear convolution of signal and ir, choosing
// direct or overlap-add convolution by the length of ir.
func Convolve(signal, ir []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}

	if len(ir) <= directThreshold {
		return Direct(signal, ir)
	}

	oa, err := NewOverlapAdd(ir, 0)
	if err != nil {
		return nil, err
	}
	return oa.Process(signal)
}

// Normalize scales x in place so that its peak magnitude equals peak and
// returns the applied factor. A silent x is left unchanged and the factor
// is 1.
func Normalize(x []float64, peak float64) float64 {
	current := vecmath.MaxAbs(x)
	if current == 0 {
		return 1
	}

	factor := peak / current
	vecmath.ScaleBlockInPlace(x, factor)
	return factor
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
