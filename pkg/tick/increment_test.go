package tick

import (
	"math"
	"testing"
)

func TestFindIncrement_SmallestFit(t *testing.T) {
	incrs := []float64{1, 2, 5, 10, 20, 50}

	incr, space := FindIncrement(0, 37, incrs, 300, 40)

	// The smallest candidate c with 300*c/37 >= 40 is 5.
	if incr != 5 {
		t.Errorf("FindIncrement() incr = %v, want 5", incr)
	}
	want := 300.0 * 5 / 37
	if math.Abs(space-want) > 1e-9 {
		t.Errorf("FindIncrement() space = %v, want %v", space, want)
	}
}

func TestFindIncrement_NoFit(t *testing.T) {
	// Even the largest candidate cannot clear the spacing floor.
	incr, space := FindIncrement(0, 1000, []float64{1, 2, 5}, 100, 40)

	if incr != 0 || space != 0 {
		t.Errorf("FindIncrement() = (%v, %v), want (0, 0) for no-fit", incr, space)
	}
}

func TestFindIncrement_DigitCeiling(t *testing.T) {
	// 17 integer digits plus a fractional increment cannot be represented
	// cleanly; the candidate must be rejected even though spacing fits.
	incr, _ := FindIncrement(0, 2e16, []float64{0.5}, 1e17, 1)
	if incr != 0 {
		t.Errorf("FindIncrement() = %v, want 0 (label precision ceiling)", incr)
	}

	// An integer increment at the same magnitude is fine.
	incr, _ = FindIncrement(0, 2e16, []float64{1e15}, 1000, 10)
	if incr != 1e15 {
		t.Errorf("FindIncrement() = %v, want 1e15", incr)
	}
}

func TestFindIncrement_StartsNearIdeal(t *testing.T) {
	// The ideal increment is (40/400)*100 = 10; the scan must not return a
	// smaller candidate that fails spacing, nor skip 10 itself.
	incrs := []float64{1, 2, 5, 10, 20, 50, 100}
	incr, _ := FindIncrement(0, 100, incrs, 400, 40)
	if incr != 10 {
		t.Errorf("FindIncrement() = %v, want 10", incr)
	}
}

func TestFindIncrement_DegenerateInputs(t *testing.T) {
	if incr, _ := FindIncrement(5, 5, []float64{1}, 100, 10); incr != 0 {
		t.Errorf("zero-width range: incr = %v, want 0", incr)
	}
	if incr, _ := FindIncrement(0, 10, []float64{1}, 0, 10); incr != 0 {
		t.Errorf("zero pixels: incr = %v, want 0", incr)
	}
	if incr, _ := FindIncrement(0, 10, nil, 100, 10); incr != 0 {
		t.Errorf("no candidates: incr = %v, want 0", incr)
	}
}

func TestNiceBounds(t *testing.T) {
	tests := []struct {
		min, max float64
		wantLo   float64
		wantHi   float64
	}{
		{3, 37, 2.5, 37.5}, // widened to the 2.5 grid
		{0, 40, 0, 40},     // already on the 5 grid
		{-7, 93, -10, 100}, // negative bound floors away from zero
		{5, 5, 5, 5},       // degenerate range passes through
	}
	for _, tt := range tests {
		lo, hi := NiceBounds(tt.min, tt.max)
		if lo != tt.wantLo || hi != tt.wantHi {
			t.Errorf("NiceBounds(%v, %v) = [%v, %v], want [%v, %v]",
				tt.min, tt.max, lo, hi, tt.wantLo, tt.wantHi)
		}
	}
}

func TestNumDecDigits(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{1, 0},
		{2.5, 1},
		{0.25, 2},
		{0.001, 3},
		{100, 0},
	}
	for _, tt := range tests {
		if got := numDecDigits(tt.v); got != tt.want {
			t.Errorf("numDecDigits(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestNumIntDigits(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{0, 1},
		{0.5, 1},
		{9, 1},
		{10, 2},
		{-12345, 5},
		{1e16, 17},
	}
	for _, tt := range tests {
		if got := numIntDigits(tt.v); got != tt.want {
			t.Errorf("numIntDigits(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
