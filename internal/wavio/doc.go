// Package wavio reads and writes mono WAV files.
//
// Rendered impulse responses are written as 32-bit IEEE float WAV, the
// format downstream convolution tools expect. Integer PCM is written and
// read through beep's wav codec; float files are handled here directly
// because beep only speaks integer PCM.
package wavio
