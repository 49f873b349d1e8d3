// Package tracer casts sound rays through a [space.Space] and reports the
// paths that reach a speaker.
//
// A single trace starts at a microphone with a caller-chosen unit direction
// and bounces specularly off the nearest wall up to Config.MaxBounces+1
// times. Before every bounce the current origin is checked for line of sight
// to the speaker; each unobstructed check is one [space.Response] carrying the
// arrival time, loudness and bounce count of that path. The origin of the
// first check is the microphone itself, which yields the direct path.
//
// The trace ends when the ray escapes into open space (Absorbed) or the
// bounce budget is used up (Exhausted).
//
// # Concurrency
//
// A Tracer only reads its Space and Config. PerformTrace allocates its own
// Recording, so one Tracer can serve many goroutines at once.
package tracer
