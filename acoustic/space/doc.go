// Package space describes a 2D room for impulse response rendering.
//
// A [Space] owns four independently indexed, append-only collections:
// walls, materials, speakers and microphones. Insertion returns a typed
// handle (WallIndex, MaterialIndex, SpeakerIndex, MicrophoneIndex) that stays
// valid for the lifetime of the Space. Accessors panic on out-of-range
// handles; a stale handle is a programming error, not a transient condition.
//
// The tracer only reads a Space, so a fully built Space can be shared by any
// number of goroutines.
package space
