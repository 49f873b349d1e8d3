package buffer

import "math"

// Buffer wraps a float64 slice that can only grow.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// GrowTo extends the buffer to at least n samples. New samples are zero.
// A buffer never shrinks: if n <= Len() this is a no-op. Capacity grows
// geometrically so that repeated small extensions stay amortized O(1).
func (b *Buffer) GrowTo(n int) {
	oldLen := len(b.samples)
	if n <= oldLen {
		return
	}
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
		// The backing array may hold stale data past the old length.
		clear(b.samples[oldLen:])
		return
	}
	grown := make([]float64, n, max(n, 2*cap(b.samples)))
	copy(grown, b.samples)
	b.samples = grown
}

// Add accumulates v into sample i. It panics if i is out of range.
func (b *Buffer) Add(i int, v float64) {
	b.samples[i] += v
}

// Zero sets all samples to 0 without changing the length.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// Copy returns a deep copy of the samples.
func (b *Buffer) Copy() []float64 {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return s
}

// LastAbove returns the index of the last sample whose magnitude exceeds
// threshold, or -1 if there is none.
func (b *Buffer) LastAbove(threshold float64) int {
	return LastAbove(b.samples, threshold)
}

// LastAbove returns the index of the last element of s whose magnitude
// exceeds threshold, or -1 if there is none.
func LastAbove(s []float64, threshold float64) int {
	for i := len(s) - 1; i >= 0; i-- {
		if math.Abs(s[i]) > threshold {
			return i
		}
	}
	return -1
}

// TrimTrailing returns s truncated after its last element whose magnitude
// exceeds threshold. A slice with no such element trims to length 0.
func TrimTrailing(s []float64, threshold float64) []float64 {
	return s[:LastAbove(s, threshold)+1]
}
