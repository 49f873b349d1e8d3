// Package conv applies rendered impulse responses to dry audio.
//
// Convolution runs either directly in the time domain or block-wise with
// FFT overlap-add:
//
//   - Direct: O(N*M), used for impulse responses of up to 64 samples.
//   - OverlapAdd: segments the dry signal into blocks and convolves each in
//     the frequency domain. The impulse response spectrum is computed once
//     and reused across calls.
//
// [Convolve] picks between the two. [Reverb] adds wet/dry mixing and peak
// normalization on top, which is what the command line uses to audition a
// room.
//
//	wet, err := conv.Convolve(dry, ir)
//
//	r := conv.Reverb{Mix: 0.3, Peak: 0.9}
//	out, err := r.Apply(dry, ir)
package conv
