package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minBlockSize is the smallest automatically chosen block size.
const minBlockSize = 256

// OverlapAdd convolves signals with a fixed impulse response using FFT
// overlap-add. It reuses scratch buffers and is not safe for concurrent
// use.
type OverlapAdd struct {
	irLen     int
	blockSize int
	fftSize   int

	plan     *algofft.Plan[complex128]
	spectrum []complex128 // FFT of the zero-padded impulse response
	scratch  []complex128
}

// NewOverlapAdd prepares a convolver for ir. A blockSize of 0 picks the
// next power of two at or above len(ir), but at least 256.
func NewOverlapAdd(ir []float64, blockSize int) (*OverlapAdd, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}
	if blockSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}
	if blockSize == 0 {
		blockSize = max(nextPowerOf2(len(ir)), minBlockSize)
	}

	fftSize := nextPowerOf2(blockSize + len(ir) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &OverlapAdd{
		irLen:     len(ir),
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		spectrum:  make([]complex128, fftSize),
		scratch:   make([]complex128, fftSize),
	}

	loadReal(oa.scratch, ir)
	if err := plan.Forward(oa.spectrum, oa.scratch); err != nil {
		return nil, fmt.Errorf("conv: impulse response FFT failed: %w", err)
	}

	return oa, nil
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int { return oa.blockSize }

// FFTSize returns the transform size.
func (oa *OverlapAdd) FFTSize() int { return oa.fftSize }

// Process returns the full linear convolution of signal with the impulse
// response, of length len(signal) + len(ir) - 1.
func (oa *OverlapAdd) Process(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(signal)+oa.irLen-1)
	if err := oa.ProcessTo(out, signal); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessTo convolves into out, which must have length
// len(signal) + len(ir) - 1. out is overwritten.
func (oa *OverlapAdd) ProcessTo(out, signal []float64) error {
	if want := len(signal) + oa.irLen - 1; len(out) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(out))
	}
	clear(out)

	for start := 0; start < len(signal); start += oa.blockSize {
		block := signal[start:min(start+oa.blockSize, len(signal))]
		if err := oa.convolveBlock(block); err != nil {
			return err
		}

		tail := out[start:min(start+len(block)+oa.irLen-1, len(out))]
		for i := range tail {
			tail[i] += real(oa.scratch[i])
		}
	}

	return nil
}

// convolveBlock leaves block * ir in the real part of oa.scratch.
func (oa *OverlapAdd) convolveBlock(block []float64) error {
	loadReal(oa.scratch, block)

	if err := oa.plan.Forward(oa.scratch, oa.scratch); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	for i, h := range oa.spectrum {
		oa.scratch[i] *= h
	}
	if err := oa.plan.Inverse(oa.scratch, oa.scratch); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}
	return nil
}

// loadReal zero-pads x into dst as complex values.
func loadReal(dst []complex128, x []float64) {
	clear(dst)
	for i, v := range x {
		dst[i] = complex(v, 0)
	}
}
