package velan

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-velan/gather"
)

// Result holds the per-sample picks of one CDP as parallel arrays.
type Result struct {
	Velocity  []float64
	Coherence []float64
	Stack     []float64
}

// NewResult allocates a Result for ns samples.
func NewResult(ns int) *Result {
	return &Result{
		Velocity:  make([]float64, ns),
		Coherence: make([]float64, ns),
		Stack:     make([]float64, ns),
	}
}

// Len returns the number of samples.
func (r *Result) Len() int {
	return len(r.Velocity)
}

func (r *Result) set(t0 int, p Pick) {
	r.Velocity[t0] = p.Velocity
	r.Coherence[t0] = p.Coherence
	r.Stack[t0] = p.Stack
}

// chunksPerWorker controls how finely samples are split so that slow
// chunks (deep samples with long moveout) do not serialize the tail.
const chunksPerWorker = 4

// ScanAll scans samples 0..ns-1 of ap on up to workers goroutines and
// returns once every sample is populated. Each task writes only the
// indices of its own chunk. workers <= 0 uses GOMAXPROCS.
//
// If ctx is cancelled before all samples are done, ScanAll returns the
// context error and no result.
func ScanAll(ctx context.Context, s *Scanner, ap *gather.Aperture, ns, workers int) (*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	res := NewResult(ns)
	if ns == 0 {
		return res, ctx.Err()
	}

	chunk := (ns + workers*chunksPerWorker - 1) / (workers * chunksPerWorker)
	if chunk < 1 {
		chunk = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < ns && gctx.Err() == nil; lo += chunk {
		hi := min(lo+chunk, ns)
		g.Go(func() error {
			for t0 := lo; t0 < hi; t0++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				res.set(t0, s.Scan(ap, t0))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
