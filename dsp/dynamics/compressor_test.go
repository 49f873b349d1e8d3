package dynamics

import (
	"errors"
	"math"
	"testing"
)

func TestCompressorZerosStayZero(t *testing.T) {
	in := make([]float64, 64)
	out := make([]float64, len(in))

	DefaultCompressor().Process(in, out)

	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d: got %f, want 0", i, v)
		}
	}
}

func TestCompressorBelowThresholdIsTransparent(t *testing.T) {
	c := Compressor{SampleRate: 48000, Threshold: 0.8, Release: 2}
	in := []float64{0.1, -0.5, 0.8, -0.79, 0}
	out := make([]float64, len(in))

	c.Process(in, out)

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d: got %f, want %f", i, out[i], in[i])
		}
	}
}

func TestCompressorSpikeAndLinearRelease(t *testing.T) {
	c := Compressor{SampleRate: 1, Threshold: 0.5, Release: 0.25}
	in := []float64{1.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	want := []float64{0, 0.125, 0.25, 0.375, 0.5, 0.5}

	out := make([]float64, len(in))
	c.Process(in, out)

	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: got %.15f, want %.15f", i, out[i], want[i])
		}
	}
}

func TestCompressorNegativeSpike(t *testing.T) {
	c := Compressor{SampleRate: 1, Threshold: 0.5, Release: 0.5}
	in := []float64{-1.5, -1}
	out := make([]float64, len(in))

	c.Process(in, out)

	// Compression 1 then 0.5 after release, -1 * 0.5.
	if out[0] != 0 || out[1] != -0.5 {
		t.Fatalf("got %v, want [0 -0.5]", out)
	}
}

func TestCompressorGainFloorsAtZero(t *testing.T) {
	c := Compressor{SampleRate: 1, Threshold: 0, Release: 0}
	in := []float64{5, 1, -1}
	out := make([]float64, len(in))

	c.Process(in, out)

	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d: got %f, want 0", i, v)
		}
	}
}

func TestCompressorInPlaceMatchesProcess(t *testing.T) {
	c := Compressor{SampleRate: 10, Threshold: 0.3, Release: 0.001}
	in := []float64{0.0, 0.1, 0.5, 0.95, 1.3, -1.1, 0.8, -0.6, 0.2, 0.0}

	want := make([]float64, len(in))
	c.Process(in, want)

	got := append([]float64(nil), in...)
	c.ProcessInPlace(got)

	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: ProcessInPlace() = %.15f, Process() = %.15f", i, got[i], want[i])
		}
	}
}

func TestCompressorLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()

	DefaultCompressor().Process(make([]float64, 3), make([]float64, 2))
}

func TestCompressorReleasePerSample(t *testing.T) {
	c := Compressor{SampleRate: 48000, Release: 2}
	if got := c.ReleasePerSample(); got != 96000 {
		t.Fatalf("ReleasePerSample() = %f, want 96000", got)
	}
}

func TestCompressorValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Compressor
		want error
	}{
		{"default", DefaultCompressor(), nil},
		{"zero threshold", Compressor{SampleRate: 1}, nil},
		{"zero sample rate", Compressor{Threshold: 1, Release: 1}, ErrInvalidSampleRate},
		{"nan sample rate", Compressor{SampleRate: math.NaN()}, ErrInvalidSampleRate},
		{"negative threshold", Compressor{SampleRate: 1, Threshold: -1}, ErrInvalidThreshold},
		{"inf threshold", Compressor{SampleRate: 1, Threshold: math.Inf(1)}, ErrInvalidThreshold},
		{"negative release", Compressor{SampleRate: 1, Release: -0.1}, ErrInvalidRelease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
