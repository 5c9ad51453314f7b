package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-velan/su"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 2.95}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}
	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffEmpty(t *testing.T) {
	d, err := MaxAbsDiff(nil, nil)
	if err != nil || d != 0 {
		t.Fatalf("MaxAbsDiff(nil, nil) = %v, %v", d, err)
	}
}

func TestRequireHelpersAcceptMatchingData(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1 + 1e-12, 2}, 1e-9)
	RequireInRange(t, []float64{0, 0.5, 1}, 0, 1)
	RequireFinite(t, []float64{-1e300, 0, 1e300})

	g1 := []*su.Trace{Flat(1, 0, 0, 4, 0), Flat(2, 0, 0, 4, 0)}
	g2 := []*su.Trace{Flat(1, 0, 0, 4, 9), Flat(2, 0, 0, 4, 9)}
	RequireAligned(t, g1, g2)
}
