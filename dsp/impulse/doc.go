// Package impulse accumulates timed arrivals into a discrete impulse
// response and renders it into a finished, limited sample buffer.
//
// A Renderer owns a grow-only sample buffer at a fixed sample rate. Each
// call to AddResponses deposits one batch of arrivals (typically the
// responses of one traced ray). Deposits are plain sums, so the buffer does
// not depend on the order in which batches are added.
//
// Render trims trailing near-silence, scales a copy of the buffer by the
// render gain and runs the limiter with the gained copy as its detector and
// input, writing onto the un-gained copy.
//
// A Renderer is not safe for concurrent use. Trace in parallel, then add the
// batches from one goroutine, or give each goroutine its own Renderer and
// combine them with Merge.
package impulse
