package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	if b := New(-1); b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
}

func TestFromSliceSharesMemory(t *testing.T) {
	s := []float64{1, 2, 3}
	b := FromSlice(s)
	b.Samples()[0] = 99
	if s[0] != 99 {
		t.Fatal("FromSlice should share underlying memory")
	}
}

func TestGrowToNeverShrinks(t *testing.T) {
	b := New(4)
	b.Add(0, 42)

	b.GrowTo(16)
	if b.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", b.Len())
	}
	if b.Samples()[0] != 42 {
		t.Fatal("GrowTo should preserve existing data")
	}

	b.GrowTo(2)
	if b.Len() != 16 {
		t.Fatalf("Len() = %d after GrowTo(2), want 16", b.Len())
	}
}

func TestGrowToZeroesReusedCapacity(t *testing.T) {
	backing := []float64{1, 2, 3, 4}
	b := FromSlice(backing[:1])

	b.GrowTo(4)
	want := []float64{1, 0, 0, 0}
	for i, v := range b.Samples() {
		if v != want[i] {
			t.Fatalf("Samples()[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestGrowToAmortizes(t *testing.T) {
	b := New(0)
	b.GrowTo(10)
	b.GrowTo(11)
	if b.Cap() < 20 {
		t.Fatalf("Cap() = %d, want geometric growth (>= 20)", b.Cap())
	}
}

func TestCopyIsDeep(t *testing.T) {
	b := FromSlice([]float64{1, 2})
	c := b.Copy()
	c[0] = 7
	if b.Samples()[0] != 1 {
		t.Fatal("Copy should not share memory")
	}
}

func TestLastAbove(t *testing.T) {
	tests := []struct {
		name      string
		samples   []float64
		threshold float64
		want      int
	}{
		{"empty", nil, 1e-5, -1},
		{"silence", []float64{0, 1e-6, -1e-6}, 1e-5, -1},
		{"negative counts", []float64{1, 0, -0.5, 1e-6}, 1e-5, 2},
		{"threshold exclusive", []float64{1, 1e-5}, 1e-5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastAbove(tt.samples, tt.threshold); got != tt.want {
				t.Fatalf("LastAbove() = %d, want %d", got, tt.want)
			}
			if got := len(TrimTrailing(tt.samples, tt.threshold)); got != tt.want+1 {
				t.Fatalf("len(TrimTrailing()) = %d, want %d", got, tt.want+1)
			}
		})
	}
}

func TestZero(t *testing.T) {
	b := FromSlice([]float64{1, 2, 3})
	b.Zero()
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}
