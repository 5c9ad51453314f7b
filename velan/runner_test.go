package velan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-velan/gather"
	"github.com/cwbudde/algo-velan/internal/testutil"
)

type progressCall struct {
	fraction float64
	status   string
}

type recordingProgress struct {
	calls []progressCall
}

func (p *recordingProgress) Report(fraction float64, status string) {
	p.calls = append(p.calls, progressCall{fraction, status})
}

type recordingPicks struct {
	ctxs []context.Context
	cdps []int32
	dts  []float64
	err  error
}

func (p *recordingPicks) RecordCDP(ctx context.Context, cdp int32, dt float64, res *Result) error {
	if p.err != nil {
		return p.err
	}
	p.ctxs = append(p.ctxs, ctx)
	p.cdps = append(p.cdps, cdp)
	p.dts = append(p.dts, dt)
	return nil
}

func buildSet(ids ...int32) *gather.Set {
	set := gather.NewSet()
	for _, id := range ids {
		set.Add(testutil.Flat(id, 0, 100, 6, float64(id)))
		set.Add(testutil.Flat(id, 10, 90, 6, float64(id)))
	}
	return set
}

func newTestRunner(t *testing.T, opts ...Option) (*Runner, *memSink, *memSink, *memSink) {
	t.Helper()
	s, err := NewScanner(1000, 2000, 10, CoherenceFunc(triangle))
	require.NoError(t, err)
	v, c, st := &memSink{}, &memSink{}, &memSink{}
	r := NewRunner(s, gather.ApertureParams{HalfOffset: 100, Tau: 0.01}, Sinks{Velocity: v, Coherence: c, Stack: st}, opts...)
	return r, v, c, st
}

func cdpsOf(m *memSink) []int32 {
	var ids []int32
	for _, tr := range m.traces {
		ids = append(ids, tr.CDP)
	}
	return ids
}

func TestRunEmitsAscendingCorrespondingRecords(t *testing.T) {
	prog := &recordingProgress{}
	picks := &recordingPicks{}
	r, v, c, st := newTestRunner(t, WithProgress(prog), WithPickSink(picks), WithWorkers(3))

	sum, err := r.Run(context.Background(), buildSet(30, 5, 12, 7, 40, 1), 5, 30)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Matching)
	assert.Equal(t, 4, sum.Processed)
	assert.Zero(t, sum.Skipped)

	want := []int32{5, 7, 12, 30}
	assert.Equal(t, want, cdpsOf(v))
	assert.Equal(t, want, cdpsOf(c))
	assert.Equal(t, want, cdpsOf(st))
	assert.Equal(t, want, picks.cdps)
	assert.Equal(t, []float64{0.004, 0.004, 0.004, 0.004}, picks.dts)

	for i := range want {
		assert.Equal(t, []float64{1500, 1500, 1500, 1500, 1500, 1500}, v.traces[i].Data)
		assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, c.traces[i].Data)
		assert.Equal(t, []float64{1500, 1500, 1500, 1500, 1500, 1500}, st.traces[i].Data)
		assert.Zero(t, v.traces[i].Offset)
		assert.Equal(t, int32(50), v.traces[i].SX)
	}

	require.Len(t, prog.calls, 4)
	assert.Equal(t, progressCall{1.0 / 3, "Processing CDP 5"}, prog.calls[0])
	assert.Equal(t, "Processing CDP 30", prog.calls[3].status)
	assert.Equal(t, 1.0, prog.calls[3].fraction)
	for i := 1; i < len(prog.calls); i++ {
		assert.GreaterOrEqual(t, prog.calls[i].fraction, prog.calls[i-1].fraction)
	}
}

func TestRunSingleCDPReportsComplete(t *testing.T) {
	prog := &recordingProgress{}
	r, v, _, _ := newTestRunner(t, WithProgress(prog))

	sum, err := r.Run(context.Background(), buildSet(1, 2, 3), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, []int32{2}, cdpsOf(v))
	assert.Equal(t, []progressCall{{1, "Processing CDP 2"}}, prog.calls)
}

func TestRunNothingToProcess(t *testing.T) {
	r, v, _, _ := newTestRunner(t)
	sum, err := r.Run(context.Background(), buildSet(1, 2), 10, 20)
	assert.ErrorIs(t, err, ErrNothingToProcess)
	assert.Zero(t, sum.Matching)
	assert.Empty(t, v.traces)

	_, err = r.Run(context.Background(), gather.NewSet(), 0, 100)
	assert.ErrorIs(t, err, ErrNothingToProcess)
}

func TestRunStopsOnSinkError(t *testing.T) {
	r, v, c, st := newTestRunner(t)
	c.failOn = 2

	sum, err := r.Run(context.Background(), buildSet(1, 2, 3), 1, 3)
	require.Error(t, err)
	assert.Equal(t, 1, sum.Processed)
	// Only the first CDP was flushed everywhere.
	assert.Equal(t, 1, v.flushed)
	assert.Equal(t, 1, c.flushed)
	assert.Equal(t, 1, st.flushed)
}

func TestRunStopsOnPickError(t *testing.T) {
	boom := errors.New("locked")
	r, _, _, _ := newTestRunner(t, WithPickSink(&recordingPicks{err: boom}))
	_, err := r.Run(context.Background(), buildSet(1), 1, 1)
	assert.ErrorIs(t, err, boom)
}

type runKey struct{}

func TestRunPassesContextToPickSink(t *testing.T) {
	picks := &recordingPicks{}
	r, _, _, _ := newTestRunner(t, WithPickSink(picks))
	ctx := context.WithValue(context.Background(), runKey{}, "line7")

	_, err := r.Run(ctx, buildSet(1, 2), 1, 2)
	require.NoError(t, err)
	require.Len(t, picks.ctxs, 2)
	for _, got := range picks.ctxs {
		assert.Equal(t, "line7", got.Value(runKey{}))
	}
}

func TestRunSkipsEmptyApertureKeepingOutputsAligned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prog := &recordingProgress{}
	picks := &recordingPicks{}
	r, v, c, st := newTestRunner(t, WithLogger(zap.New(core)), WithProgress(prog), WithPickSink(picks))
	r.aperture = func(g *gather.Group, p gather.ApertureParams) (*gather.Aperture, error) {
		if g.CDP == 2 {
			return gather.NewAperture(&gather.Group{CDP: g.CDP}, p)
		}
		return gather.NewAperture(g, p)
	}

	sum, err := r.Run(context.Background(), buildSet(1, 2, 3), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Matching)
	assert.Equal(t, 2, sum.Processed)
	assert.Equal(t, 1, sum.Skipped)

	testutil.RequireAligned(t, v.traces, c.traces, st.traces)
	assert.Equal(t, []int32{1, 3}, cdpsOf(v))
	assert.Equal(t, []int32{1, 3}, picks.cdps)

	warns := logs.FilterMessage("skipping cdp").All()
	require.Len(t, warns, 1)
	assert.Equal(t, int32(2), warns[0].ContextMap()["cdp"])
	assert.Contains(t, warns[0].ContextMap()["error"], gather.ErrEmptyAperture.Error())

	require.Len(t, prog.calls, 3)
	assert.Equal(t, 1.0, prog.calls[2].fraction)
}

func TestRunCancelled(t *testing.T) {
	r, v, _, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, buildSet(1, 2), 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, v.traces)
}

func TestRunLogsPerCDP(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r, _, _, _ := newTestRunner(t, WithLogger(zap.New(core)))

	_, err := r.Run(context.Background(), buildSet(8, 9), 0, 100)
	require.NoError(t, err)
	entries := logs.FilterMessage("cdp done").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int32(8), entries[0].ContextMap()["cdp"])
}

func TestRunEndToEndSemblanceStyleGather(t *testing.T) {
	// A real gather through the triangle coherence still yields one record
	// per CDP of the first trace's length.
	traces := testutil.HyperbolicGather(testutil.GatherSpec{
		CDP: 3, MidpointX: 500, HalfOffsets: []int32{0, 50, 100}, NS: 40, DT: 4000, Freq: 20,
		Events: []testutil.Event{{T0: 0.08, V: 1500}},
	})
	set := gather.NewSet()
	for _, tr := range traces {
		set.Add(tr)
	}
	r, v, c, st := newTestRunner(t)
	_, err := r.Run(context.Background(), set, 3, 3)
	require.NoError(t, err)
	require.Len(t, v.traces, 1)
	testutil.RequireAligned(t, v.traces, c.traces, st.traces)
	assert.Len(t, v.traces[0].Data, 40)
	assert.Equal(t, int32(3), v.traces[0].CDP)
}
