package velan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-velan/gather"
)

// Runner processes CDP gathers one at a time.
type Runner struct {
	scanner  *Scanner
	params   gather.ApertureParams
	out      Sinks
	workers  int
	logger   *zap.Logger
	progress Progress
	picks    PickSink

	aperture func(*gather.Group, gather.ApertureParams) (*gather.Aperture, error)
}

// NewRunner returns a Runner that scans with s, builds apertures from p
// and writes to out.
func NewRunner(s *Scanner, p gather.ApertureParams, out Sinks, opts ...Option) *Runner {
	r := &Runner{
		scanner:  s,
		params:   p,
		out:      out,
		logger:   zap.NewNop(),
		progress: NopProgress{},
		aperture: gather.NewAperture,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Summary describes a completed run.
type Summary struct {
	Matching  int
	Processed int
	Skipped   int
	Elapsed   time.Duration
}

// Run processes every CDP of set with id in [lo, hi] in ascending order.
// Output for a CDP is flushed before the next CDP starts, so an error
// leaves every earlier CDP fully written on all three sinks.
func (r *Runner) Run(ctx context.Context, set *gather.Set, lo, hi int32) (Summary, error) {
	start := time.Now()
	ids := set.InRange(lo, hi)
	sum := Summary{Matching: len(ids)}
	if len(ids) == 0 {
		return sum, ErrNothingToProcess
	}

	for k, id := range ids {
		if err := r.processCDP(ctx, set, id); err != nil {
			if !errors.Is(err, gather.ErrEmptyAperture) {
				sum.Elapsed = time.Since(start)
				return sum, err
			}
			r.logger.Warn("skipping cdp", zap.Int32("cdp", id), zap.Error(err))
			sum.Skipped++
		} else {
			sum.Processed++
		}
		r.progress.Report(Fraction(k+1, len(ids)), fmt.Sprintf("Processing CDP %d", id))
	}
	sum.Elapsed = time.Since(start)
	return sum, nil
}

func (r *Runner) processCDP(ctx context.Context, set *gather.Set, id int32) error {
	started := time.Now()
	g, ok := set.Group(id)
	if !ok {
		return fmt.Errorf("cdp %d: %w", id, gather.ErrEmptyAperture)
	}
	ap, err := r.aperture(g, r.params)
	if err != nil {
		return fmt.Errorf("cdp %d: %w", id, err)
	}

	ns := ap.NS()
	res, err := ScanAll(ctx, r.scanner, ap, ns, r.workers)
	if err != nil {
		return fmt.Errorf("velan: scan cdp %d: %w", id, err)
	}
	if err := r.out.emit(Synthesize(g.First(), res)); err != nil {
		return fmt.Errorf("cdp %d: %w", id, err)
	}
	if r.picks != nil {
		if err := r.picks.RecordCDP(ctx, id, ap.SampleInterval(), res); err != nil {
			return fmt.Errorf("velan: record picks for cdp %d: %w", id, err)
		}
	}
	r.logger.Debug("cdp done",
		zap.Int32("cdp", id),
		zap.Int("traces", len(ap.Traces)),
		zap.Int("ns", ns),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}
