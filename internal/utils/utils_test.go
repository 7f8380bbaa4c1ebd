package utils

import (
	"math"
	"testing"
)

func TestRotateTowardsIsBounded(t *testing.T) {
	got := RotateTowards(0, math.Pi/2, 0.1)
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("RotateTowards = %v, want 0.1", got)
	}
	got = RotateTowards(0, 0.05, 0.1)
	if math.Abs(got-0.05) > 1e-9 {
		t.Errorf("RotateTowards should snap when within step, got %v", got)
	}
}

func TestRotateTowardsTakesShortestArc(t *testing.T) {
	from := 170 * math.Pi / 180
	to := -170 * math.Pi / 180
	got := RotateTowards(from, to, DegToRad(5))
	want := NormalizeAngle(175 * math.Pi / 180)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RotateTowards = %v, want %v", got, want)
	}
}

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(3 * math.Pi); math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
		t.Errorf("NormalizeAngle(3pi) = %v", got)
	}
	if got := NormalizeAngle(-math.Pi / 2); got != -math.Pi/2 {
		t.Errorf("NormalizeAngle changed an in-range value: %v", got)
	}
}

func TestChooseWeightedFallbacks(t *testing.T) {
	p := NewPRNGService(1)
	if got := p.ChooseWeighted(nil); got != -1 {
		t.Errorf("empty = %d, want -1", got)
	}
	if got := p.ChooseWeighted([]float64{0, 0, 0}); got != 0 {
		t.Errorf("zero total = %d, want 0", got)
	}
	for i := 0; i < 50; i++ {
		if got := p.ChooseWeighted([]float64{0, 3, 0}); got != 1 {
			t.Fatalf("single positive weight picked %d", got)
		}
	}
}

func TestPickWeightedTopOfRangeSkipsZeroWeights(t *testing.T) {
	w := []float64{1, 2, 0, 0}
	if got := pickWeighted(w, 3); got != 1 {
		t.Errorf("pickWeighted at the total = %d, want 1", got)
	}
	if got := pickWeighted(w, 1.5); got != 1 {
		t.Errorf("pickWeighted(1.5) = %d, want 1", got)
	}
	if got := pickWeighted(w, 0); got != 0 {
		t.Errorf("pickWeighted(0) = %d, want 0", got)
	}
}

func TestChooseWeightedIsReproducible(t *testing.T) {
	a, b := NewPRNGService(42), NewPRNGService(42)
	w := []float64{1, 2, 3, 4}
	for i := 0; i < 100; i++ {
		if a.ChooseWeighted(w) != b.ChooseWeighted(w) {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestPickDistinct(t *testing.T) {
	p := NewPRNGService(7)
	got := p.PickDistinct(5, 2)
	if len(got) != 2 || got[0] == got[1] {
		t.Errorf("PickDistinct = %v", got)
	}
	if got := p.PickDistinct(1, 2); len(got) != 1 {
		t.Errorf("PickDistinct(1,2) = %v", got)
	}
}

func TestRange(t *testing.T) {
	p := NewPRNGService(3)
	for i := 0; i < 100; i++ {
		v := p.Range(0.5, 0)
		if v < 0 || v >= 0.5 {
			t.Fatalf("Range out of bounds: %v", v)
		}
	}
}
