// Package render turns a scene into one impulse response per microphone.
//
// For every microphone, each speaker is traced with Settings.Samples rays
// in random directions. Traces run in parallel on a bounded worker pool and
// only read the scene; their responses are collected per ray and then
// accumulated into one impulse.Renderer on the calling goroutine. The
// rendered buffer is limited, analyzed and handed to a Sink, by default a
// 32-bit float WAV writer.
//
// Ray directions are drawn from a PCG stream keyed by the seed, the
// microphone, the speaker and the ray number, so a render is reproducible
// regardless of the number of workers.
package render
