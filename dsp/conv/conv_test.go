package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-roomir/internal/testutil"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		ir     []float64
		want   []float64
	}{
		{
			name:   "box",
			signal: []float64{1, 2, 3},
			ir:     []float64{1, 1, 1},
			want:   []float64{1, 3, 6, 5, 3},
		},
		{
			name:   "unit impulse",
			signal: []float64{1, 2, 3, 4, 5},
			ir:     []float64{1},
			want:   []float64{1, 2, 3, 4, 5},
		},
		{
			name:   "delayed echo",
			signal: []float64{1, 2, 3},
			ir:     []float64{1, 0, -0.5},
			want:   []float64{1, 2, 2.5, -1, -1.5},
		},
		{
			name:   "symmetric",
			signal: []float64{1, 2, 1},
			ir:     []float64{1, 2, 1},
			want:   []float64{1, 4, 6, 4, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Direct(tt.signal, tt.ir)
			if err != nil {
				t.Fatalf("Direct() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}

func TestEmptyInputs(t *testing.T) {
	if _, err := Direct(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Direct(nil, ir) error = %v, want %v", err, ErrEmptyInput)
	}
	if _, err := Direct([]float64{1}, nil); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Direct(signal, nil) error = %v, want %v", err, ErrEmptyResponse)
	}
	if _, err := Convolve(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Convolve(nil, ir) error = %v, want %v", err, ErrEmptyInput)
	}
	if _, err := NewOverlapAdd(nil, 0); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("NewOverlapAdd(nil) error = %v, want %v", err, ErrEmptyResponse)
	}
	if _, err := NewOverlapAdd([]float64{1}, -1); !errors.Is(err, ErrInvalidBlockSize) {
		t.Errorf("NewOverlapAdd(ir, -1) error = %v, want %v", err, ErrInvalidBlockSize)
	}
}

func TestOverlapAddMatchesDirect(t *testing.T) {
	tests := []struct {
		name      string
		signalLen int
		irLen     int
		blockSize int
	}{
		{"short signal", 10, 100, 0},
		{"single block", 200, 65, 256},
		{"many blocks", 3000, 300, 128},
		{"block of one", 17, 5, 1},
		{"uneven tail", 1001, 77, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := testutil.DeterministicNoise(1, 1, tt.signalLen)
			ir := testutil.DeterministicNoise(2, 0.5, tt.irLen)

			want, err := Direct(signal, ir)
			if err != nil {
				t.Fatalf("Direct() error = %v", err)
			}

			oa, err := NewOverlapAdd(ir, tt.blockSize)
			if err != nil {
				t.Fatalf("NewOverlapAdd() error = %v", err)
			}
			got, err := oa.Process(signal)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
		})
	}
}

func TestOverlapAddReusable(t *testing.T) {
	ir := testutil.DeterministicNoise(3, 1, 90)
	oa, err := NewOverlapAdd(ir, 32)
	if err != nil {
		t.Fatalf("NewOverlapAdd() error = %v", err)
	}

	for seed := int64(10); seed < 13; seed++ {
		signal := testutil.DeterministicNoise(seed, 1, 150)
		want, _ := Direct(signal, ir)
		got, err := oa.Process(signal)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
	}
}

func TestOverlapAddSizes(t *testing.T) {
	oa, err := NewOverlapAdd(make([]float64, 300), 0)
	if err != nil {
		t.Fatalf("NewOverlapAdd() error = %v", err)
	}
	if oa.BlockSize() != 512 {
		t.Errorf("BlockSize() = %d, want 512", oa.BlockSize())
	}
	if oa.FFTSize() != 1024 {
		t.Errorf("FFTSize() = %d, want 1024", oa.FFTSize())
	}

	oa, err = NewOverlapAdd(make([]float64, 3), 0)
	if err != nil {
		t.Fatalf("NewOverlapAdd() error = %v", err)
	}
	if oa.BlockSize() != minBlockSize {
		t.Errorf("BlockSize() = %d, want %d", oa.BlockSize(), minBlockSize)
	}
}

func TestOverlapAddProcessToLength(t *testing.T) {
	oa, err := NewOverlapAdd([]float64{1, 2}, 4)
	if err != nil {
		t.Fatalf("NewOverlapAdd() error = %v", err)
	}
	if err := oa.ProcessTo(make([]float64, 3), []float64{1, 2, 3}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("ProcessTo() error = %v, want %v", err, ErrLengthMismatch)
	}
}

func TestConvolveLongResponse(t *testing.T) {
	signal := testutil.DeterministicNoise(4, 1, 500)
	ir := testutil.DeterministicNoise(5, 1, directThreshold+1)

	want, _ := Direct(signal, ir)
	got, err := Convolve(signal, ir)
	if err != nil {
		t.Fatalf("Convolve() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestNormalize(t *testing.T) {
	x := []float64{0.1, -0.4, 0.2}
	factor := Normalize(x, 1)

	if math.Abs(factor-2.5) > 1e-12 {
		t.Fatalf("factor = %f, want 2.5", factor)
	}
	testutil.RequireSliceNearlyEqual(t, x, []float64{0.25, -1, 0.5}, 1e-12)

	silent := []float64{0, 0}
	if f := Normalize(silent, 1); f != 1 || silent[0] != 0 || silent[1] != 0 {
		t.Fatalf("Normalize(silent) = %f, %v", f, silent)
	}
}

func TestFadeOut(t *testing.T) {
	x := []float64{1, 1, 1, 1, 1}
	FadeOut(x, 2)

	// Half-Hann over two samples: cos(pi/2) and cos(pi).
	testutil.RequireSliceNearlyEqual(t, x, []float64{1, 1, 1, 0.5, 0}, 1e-12)

	y := []float64{2, 2}
	FadeOut(y, 10)
	testutil.RequireSliceNearlyEqual(t, y, []float64{1, 0}, 1e-12)

	FadeOut(nil, 3)
}
