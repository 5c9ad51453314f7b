package velan

import (
	"fmt"

	"github.com/cwbudde/algo-velan/su"
)

// Output is the set of three diagnostic traces for one CDP.
type Output struct {
	Velocity  *su.Trace
	Coherence *su.Trace
	Stack     *su.Trace
}

// Synthesize builds the output traces of a CDP from its first trace and
// its populated result. Headers are cloned from first with the offset
// zeroed and source and receiver both moved to first's midpoint.
func Synthesize(first *su.Trace, res *Result) Output {
	base := first.CloneHeader()
	base.Offset = 0
	base.SX = midpoint(first.SX, first.GX)
	base.GX = base.SX
	base.SY = midpoint(first.SY, first.GY)
	base.GY = base.SY

	withData := func(data []float64) *su.Trace {
		t := base.CloneHeader()
		t.Data = data
		t.NS = uint16(len(data))
		return t
	}
	return Output{
		Velocity:  withData(res.Velocity),
		Coherence: withData(res.Coherence),
		Stack:     withData(res.Stack),
	}
}

// midpoint averages two raw header coordinates, truncating toward zero.
func midpoint(a, b int32) int32 {
	return int32((int64(a) + int64(b)) / 2)
}

// Sink receives output traces. *su.Writer satisfies Sink.
type Sink interface {
	Write(t *su.Trace) error
	Flush() error
}

// Sinks are the three output destinations. Their k-th records always
// describe the same CDP.
type Sinks struct {
	Velocity  Sink
	Coherence Sink
	Stack     Sink
}

func (s Sinks) emit(o Output) error {
	pairs := []struct {
		name string
		sink Sink
		tr   *su.Trace
	}{
		{"velocity", s.Velocity, o.Velocity},
		{"coherence", s.Coherence, o.Coherence},
		{"stack", s.Stack, o.Stack},
	}
	for _, p := range pairs {
		if err := p.sink.Write(p.tr); err != nil {
			return fmt.Errorf("velan: write %s trace: %w", p.name, err)
		}
	}
	for _, p := range pairs {
		if err := p.sink.Flush(); err != nil {
			return fmt.Errorf("velan: flush %s output: %w", p.name, err)
		}
	}
	return nil
}
