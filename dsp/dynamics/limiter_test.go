package dynamics

import (
	"math"
	"testing"
)

func TestLimiterMetrics(t *testing.T) {
	l := NewLimiter(Compressor{SampleRate: 1, Threshold: 0.5, Release: 0.25})

	for _, x := range []float64{0.2, -1.5, 0.5} {
		l.ProcessSample(x)
	}

	m := l.Metrics()
	if m.InputPeak != 1.5 {
		t.Fatalf("InputPeak = %f, want 1.5", m.InputPeak)
	}
	if m.MaxCompression != 1 {
		t.Fatalf("MaxCompression = %f, want 1", m.MaxCompression)
	}
	// 0.2 passes unchanged; 0.5 is scaled to 0.125.
	if math.Abs(m.OutputPeak-0.2) > 1e-12 {
		t.Fatalf("OutputPeak = %f, want 0.2", m.OutputPeak)
	}
}

func TestLimiterReset(t *testing.T) {
	l := NewLimiter(Compressor{SampleRate: 1, Threshold: 0.5, Release: 0.1})
	l.ProcessSample(2)

	if l.Compression() == 0 {
		t.Fatal("expected compression after spike")
	}

	l.Reset()

	if l.Compression() != 0 || l.Gain() != 1 {
		t.Fatalf("after Reset: compression=%f gain=%f", l.Compression(), l.Gain())
	}
	if l.Metrics() != (LimiterMetrics{}) {
		t.Fatalf("after Reset: metrics=%+v", l.Metrics())
	}
}

func TestLimiterStreamingMatchesBlock(t *testing.T) {
	c := Compressor{SampleRate: 100, Threshold: 0.4, Release: 0.0005}
	in := []float64{0.9, 0.3, -0.7, 0.2, 0.0, 1.2, -0.1, 0.4, 0.6, -0.8}

	want := make([]float64, len(in))
	c.Process(in, want)

	l := NewLimiter(c)
	got := append([]float64(nil), in...)
	l.ProcessInPlace(got[:4])
	l.ProcessInPlace(got[4:])

	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: got %.15f, want %.15f", i, got[i], want[i])
		}
	}
}
