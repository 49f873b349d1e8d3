// Package ir summarizes rendered impulse responses with ISO 3382 room
// acoustic parameters.
//
// All parameters derive from the energy h² of the response, measured from
// its absolute peak (the direct sound):
//
//   - RT60 from T30, falling back to T20, on the Schroeder decay curve.
//   - EDT from the 0 to -10 dB range of the same curve.
//   - C50 and C80 clarity in dB, D50 and D80 definition as ratios.
//   - Center time as the energy centroid.
//
// Usage:
//
//	a, err := ir.NewAnalyzer(48000)
//	m, err := a.Analyze(samples)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", m.RT60, m.C80)
package ir
