package velan

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-velan/gather"
)

// Pick is the outcome of one velocity scan.
type Pick struct {
	Velocity  float64
	Coherence float64
	Stack     float64
}

// Candidates returns the nc trial velocities c0 + (c1-c0)*i/nc for
// i = 0..nc-1. c1 itself is never included.
func Candidates(c0, c1 float64, nc int) []float64 {
	if nc < 1 {
		return nil
	}
	out := make([]float64, nc)
	for i := range out {
		out[i] = candidate(c0, c1, i, nc)
	}
	return out
}

func candidate(c0, c1 float64, i, nc int) float64 {
	return c0 + (c1-c0)*float64(i)/float64(nc)
}

// Scanner searches a fixed velocity grid for maximum coherence.
type Scanner struct {
	c0, c1 float64
	nc     int
	coh    Coherence
}

// NewScanner returns a Scanner over [c0, c1) with nc candidates.
func NewScanner(c0, c1 float64, nc int, coh Coherence) (*Scanner, error) {
	if nc < 1 {
		return nil, fmt.Errorf("%w: nc must be >= 1: %d", ErrInvalidGrid, nc)
	}
	if math.IsNaN(c0) || math.IsInf(c0, 0) || math.IsNaN(c1) || math.IsInf(c1, 0) {
		return nil, fmt.Errorf("%w: bounds must be finite: [%v, %v)", ErrInvalidGrid, c0, c1)
	}
	if coh == nil {
		return nil, fmt.Errorf("%w: nil coherence", ErrInvalidGrid)
	}
	return &Scanner{c0: c0, c1: c1, nc: nc, coh: coh}, nil
}

// Default is the pick returned when no candidate scores above zero.
func (s *Scanner) Default() Pick {
	return Pick{Velocity: s.c0}
}

// Scan evaluates every candidate in increasing order at sample t0.
// A candidate replaces the current best only when its coherence is strictly
// greater, and its stack value is captured in the same step.
func (s *Scanner) Scan(ap *gather.Aperture, t0 int) Pick {
	best := s.Default()
	for i := 0; i < s.nc; i++ {
		v := candidate(s.c0, s.c1, i, s.nc)
		coh, stack := s.coh.Evaluate(ap, t0, v, ap.MX, ap.MY)
		if coh > best.Coherence {
			best = Pick{Velocity: v, Coherence: coh, Stack: stack}
		}
	}
	return best
}
