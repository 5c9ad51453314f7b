package velan

import (
	"context"

	"go.uber.org/zap"
)

// PickSink receives the complete result of each processed CDP. ctx is the
// context passed to Runner.Run.
type PickSink interface {
	RecordCDP(ctx context.Context, cdp int32, dt float64, res *Result) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the number of goroutines scanning samples of one CDP.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithProgress sets the progress reporter. A nil reporter is ignored.
func WithProgress(p Progress) Option {
	return func(r *Runner) {
		if p != nil {
			r.progress = p
		}
	}
}

// WithPickSink records every processed CDP's result in s.
func WithPickSink(s PickSink) Option {
	return func(r *Runner) {
		r.picks = s
	}
}
