package dynamics

import "math"

// LimiterMetrics holds metering information since the last reset.
type LimiterMetrics struct {
	InputPeak      float64 // maximum |input|
	OutputPeak     float64 // maximum |output|
	MaxCompression float64 // maximum compression amount reached
}

// Limiter is the streaming form of Compressor. It is not safe for
// concurrent use.
type Limiter struct {
	threshold        float64
	releasePerSample float64

	compression float64
	metrics     LimiterMetrics
}

// NewLimiter returns a Limiter with zero compression.
func NewLimiter(c Compressor) *Limiter {
	return &Limiter{
		threshold:        c.Threshold,
		releasePerSample: c.ReleasePerSample(),
	}
}

// ProcessSample limits one sample.
func (l *Limiter) ProcessSample(x float64) float64 {
	over := math.Max(math.Abs(x)-l.threshold, 0)
	l.compression = math.Max(l.compression, over)

	out := x * l.Gain()

	l.updateMetrics(x, out)
	l.compression = math.Max(l.compression-l.releasePerSample, 0)

	return out
}

// ProcessInPlace limits buf in place, continuing from the current state.
func (l *Limiter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}

// Gain returns the multiplier the current compression amount implies.
func (l *Limiter) Gain() float64 {
	return math.Max(1-l.compression, 0)
}

// Compression returns the current compression amount.
func (l *Limiter) Compression() float64 { return l.compression }

// Metrics returns the metering values since the last reset.
func (l *Limiter) Metrics() LimiterMetrics { return l.metrics }

// Reset clears the compression state and the metrics.
func (l *Limiter) Reset() {
	l.compression = 0
	l.metrics = LimiterMetrics{}
}

func (l *Limiter) updateMetrics(in, out float64) {
	l.metrics.InputPeak = math.Max(l.metrics.InputPeak, math.Abs(in))
	l.metrics.OutputPeak = math.Max(l.metrics.OutputPeak, math.Abs(out))
	l.metrics.MaxCompression = math.Max(l.metrics.MaxCompression, l.compression)
}
