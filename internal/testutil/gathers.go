package testutil

import (
	"io"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-velan/su"
)

// Ricker returns the Ricker wavelet of peak frequency f at time t.
func Ricker(f, t float64) float64 {
	a := math.Pi * f * t
	a *= a
	return (1 - 2*a) * math.Exp(-a)
}

// Event is a reflection with zero-offset time T0 (seconds) and stacking
// velocity V.
type Event struct {
	T0 float64
	V  float64
}

// GatherSpec describes a synthetic CMP gather with hyperbolic events.
type GatherSpec struct {
	CDP         int32
	MidpointX   int32
	HalfOffsets []int32
	NS          int
	DT          uint16 // microseconds
	Freq        float64
	Events      []Event
	Noise       float64
	Seed        int64
}

// HyperbolicGather renders spec into traces. Source and receiver sit
// symmetrically about MidpointX, so every trace shares the same midpoint.
func HyperbolicGather(spec GatherSpec) []*su.Trace {
	dt := float64(spec.DT) * 1e-6
	rng := rand.New(rand.NewSource(spec.Seed))
	out := make([]*su.Trace, 0, len(spec.HalfOffsets))
	for _, h := range spec.HalfOffsets {
		tr := &su.Trace{
			CDP:    spec.CDP,
			Offset: 2 * h,
			SX:     spec.MidpointX - h,
			GX:     spec.MidpointX + h,
			DT:     spec.DT,
			Data:   make([]float64, spec.NS),
		}
		for _, ev := range spec.Events {
			tx := math.Sqrt(ev.T0*ev.T0 + math.Pow(2*float64(h)/ev.V, 2))
			for j := range tr.Data {
				tr.Data[j] += Ricker(spec.Freq, float64(j)*dt-tx)
			}
		}
		if spec.Noise > 0 {
			for j := range tr.Data {
				tr.Data[j] += (rng.Float64()*2 - 1) * spec.Noise
			}
		}
		out = append(out, tr)
	}
	return out
}

// SliceReader replays a fixed list of traces.
type SliceReader struct {
	Traces []*su.Trace
	// Err, when set, is returned after the traces are exhausted instead of io.EOF.
	Err error
	pos int
}

// Read returns the next trace or io.EOF.
func (r *SliceReader) Read() (*su.Trace, error) {
	if r.pos >= len(r.Traces) {
		if r.Err != nil {
			return nil, r.Err
		}
		return nil, io.EOF
	}
	t := r.Traces[r.pos]
	r.pos++
	return t, nil
}

// Flat returns a trace with constant amplitude v, n samples and the given
// geometry, handy for grouping tests.
func Flat(cdp, sx, gx int32, n int, v float64) *su.Trace {
	tr := &su.Trace{CDP: cdp, SX: sx, GX: gx, Offset: gx - sx, DT: 4000, Data: make([]float64, n)}
	for i := range tr.Data {
		tr.Data[i] = v
	}
	return tr
}
