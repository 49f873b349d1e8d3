package testutil

import "math/rand"

// DeterministicNoise generates white noise in [-amplitude, amplitude) with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position. Out-of-range
// positions yield silence.
func Impulse(length, pos int) []float64 {
	return Spike(length, pos, 1)
}

// Spike generates silence with a single sample of the given value at pos.
func Spike(length, pos int, value float64) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = value
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
