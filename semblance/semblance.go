package semblance

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-velan/gather"
	"github.com/cwbudde/algo-velan/internal/interp"
)

// Semblance evaluates moveout-corrected semblance. It is safe for
// concurrent use.
type Semblance struct {
	kind    interp.Kind
	scratch sync.Pool
}

// Option configures a Semblance.
type Option func(*Semblance)

// WithInterpolation selects the kernel used to read amplitudes between samples.
func WithInterpolation(k interp.Kind) Option {
	return func(s *Semblance) {
		s.kind = k
	}
}

// New returns a Semblance using linear interpolation unless configured otherwise.
func New(opts ...Option) *Semblance {
	s := &Semblance{kind: interp.Linear}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.scratch.New = func() any { return &window{} }
	return s
}

// Interpolation returns the configured kernel.
func (s *Semblance) Interpolation() interp.Kind {
	return s.kind
}

type window struct {
	sum  []float64
	vals []float64
}

func (w *window) reset(n int) {
	if cap(w.sum) < n {
		w.sum = make([]float64, n)
		w.vals = make([]float64, n)
	}
	w.sum = w.sum[:n]
	w.vals = w.vals[:n]
	for i := range w.sum {
		w.sum[i] = 0
	}
}

// Evaluate returns the semblance and the stacked amplitude of ap at sample
// t0 for the trial velocity v. The midpoint arguments are accepted for the
// coherence contract; pure CMP moveout does not depend on them.
func (s *Semblance) Evaluate(ap *gather.Aperture, t0 int, v, mx, my float64) (coherence, stack float64) {
	_, _ = mx, my
	if v <= 0 || len(ap.Traces) == 0 {
		return 0, 0
	}
	dt := ap.SampleInterval()
	if dt <= 0 {
		return 0, 0
	}
	half := int(math.Round(ap.Tau / dt))
	if half < 0 {
		half = 0
	}

	w := s.scratch.Get().(*window)
	defer s.scratch.Put(w)
	w.reset(2*half + 1)

	t0s := float64(t0) * dt
	var (
		n      int
		energy float64
	)
	for _, tr := range ap.Traces {
		tdt := tr.SampleInterval()
		if tdt <= 0 || len(tr.Data) == 0 {
			continue
		}
		h := tr.HalfOffsetLen()
		tx := math.Sqrt(t0s*t0s + (2*h/v)*(2*h/v))
		centre := tx / tdt
		if centre > float64(len(tr.Data)-1) {
			continue
		}
		for k := -half; k <= half; k++ {
			w.vals[k+half] = s.kind.At(tr.Data, centre+float64(k))
		}
		n++
		stack += w.vals[half]
		energy += vecmath.DotProduct(w.vals, w.vals)
		vecmath.AddBlockInPlace(w.sum, w.vals)
	}
	if n == 0 {
		return 0, 0
	}
	stack /= float64(n)
	if energy == 0 {
		return 0, stack
	}
	coherence = vecmath.DotProduct(w.sum, w.sum) / (float64(n) * energy)
	return coherence, stack
}
