package picks

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-velan/velan"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picks.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestRecordAndReadBack(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	info := RunInfo{Input: "line1.su", C0: 1000, C1: 3000, NC: 40, APH: 800, Tau: 0.02}
	run, err := s.BeginRun(ctx, info)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run)

	res := &velan.Result{
		Velocity:  []float64{1500, 1550, 1600},
		Coherence: []float64{0.1, 0.7, 0.4},
		Stack:     []float64{0, 2.5, -1},
	}
	require.NoError(t, s.RecordCDP(ctx, 17, 0.004, res))
	require.NoError(t, s.RecordCDP(ctx, 18, 0.004, velan.NewResult(2)))

	got, err := s.Picks(ctx, run, 17)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Pick{Sample: 1, Time: 0.004, Velocity: 1550, Coherence: 0.7, Stack: 2.5}, got[1])

	other, err := s.Picks(ctx, run, 18)
	require.NoError(t, err)
	assert.Len(t, other, 2)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run, runs[0].ID)
	assert.Equal(t, info, runs[0].RunInfo)
}

func TestRecordWithoutRun(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	assert.ErrorIs(t, s.RecordCDP(ctx, 1, 0.004, velan.NewResult(1)), ErrNoRun)
}

func TestDuplicateCDPRejected(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	_, err := s.BeginRun(ctx, RunInfo{Input: "x"})
	require.NoError(t, err)
	require.NoError(t, s.RecordCDP(ctx, 1, 0.004, velan.NewResult(2)))
	assert.Error(t, s.RecordCDP(ctx, 1, 0.004, velan.NewResult(2)))
}

func TestRecordHonoursCancelledContext(t *testing.T) {
	s, _ := openTemp(t)
	run, err := s.BeginRun(context.Background(), RunInfo{Input: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.RecordCDP(ctx, 4, 0.004, velan.NewResult(3)), context.Canceled)

	got, err := s.Picks(context.Background(), run, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReopenKeepsRuns(t *testing.T) {
	s, path := openTemp(t)
	_, err := s.BeginRun(context.Background(), RunInfo{Input: "a.su"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	_, err = again.BeginRun(context.Background(), RunInfo{Input: "b.su"})
	require.NoError(t, err)

	runs, err := again.Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
