package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/cwbudde/algo-velan/su"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !scalar.EqualWithinAbs(got[i], want[i], eps) {
			t.Fatalf("sample %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], math.Abs(got[i]-want[i]), eps)
		}
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	RequireInRange(t, data, math.Inf(-1), math.Inf(1))
}

// RequireInRange fails t if any sample is non-finite or outside [lo, hi].
func RequireInRange(t testing.TB, data []float64, lo, hi float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d: non-finite value %v", i, v)
		}
		if v < lo || v > hi {
			t.Fatalf("sample %d: %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}

// RequireAligned fails t unless every gather has the same number of
// records and the k-th records of all gathers share CDP and sample count.
func RequireAligned(t testing.TB, gathers ...[]*su.Trace) {
	t.Helper()
	if len(gathers) == 0 {
		return
	}
	ref := gathers[0]
	for g, other := range gathers[1:] {
		if len(other) != len(ref) {
			t.Fatalf("gather %d: %d records, gather 0 has %d", g+1, len(other), len(ref))
		}
		for k := range ref {
			if other[k].CDP != ref[k].CDP || len(other[k].Data) != len(ref[k].Data) {
				t.Fatalf("record %d: gather %d has cdp %d ns %d, gather 0 has cdp %d ns %d",
					k, g+1, other[k].CDP, len(other[k].Data), ref[k].CDP, len(ref[k].Data))
			}
		}
	}
}

// MaxAbsDiff returns the largest absolute sample difference between two
// traces. Returns an error if they differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}
