// Package dynamics provides the dynamic-range limiter applied to rendered
// impulse responses.
//
// The limiter has an instant attack and a linear release: every sample the
// amount of compression jumps up to the excess of the input over the
// threshold, and otherwise decays toward zero by a fixed step. The gain is
// one minus the current compression, floored at zero.
//
// Included types:
//   - Compressor: value configuration with a one-shot Process.
//   - Limiter: the streaming state machine behind Compressor.Process.
package dynamics
