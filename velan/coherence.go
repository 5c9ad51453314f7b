package velan

import "github.com/cwbudde/algo-velan/gather"

// Coherence scores a trial velocity at sample t0 of an aperture and returns
// the coherence together with the stacked amplitude for that velocity.
// Implementations must be deterministic and safe for concurrent use.
type Coherence interface {
	Evaluate(ap *gather.Aperture, t0 int, velocity, mx, my float64) (coherence, stack float64)
}

// CoherenceFunc adapts a function to the Coherence interface.
type CoherenceFunc func(ap *gather.Aperture, t0 int, velocity, mx, my float64) (coherence, stack float64)

// Evaluate calls f.
func (f CoherenceFunc) Evaluate(ap *gather.Aperture, t0 int, velocity, mx, my float64) (float64, float64) {
	return f(ap, t0, velocity, mx, my)
}
