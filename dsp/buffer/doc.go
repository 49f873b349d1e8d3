// Package buffer provides the growable float64 sample buffer used by the
// impulse accumulator. All DSP functions accept raw []float64 slices;
// Buffer adds the grow-only, zero-filled semantics an accumulator needs and
// a few helpers for trimming trailing silence.
package buffer
