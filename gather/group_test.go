package gather

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-velan/internal/testutil"
	"github.com/cwbudde/algo-velan/su"
)

func TestIngestGroupsInArrivalOrder(t *testing.T) {
	// Half-offsets: 50, 100, 150, 25, 100.
	traces := []*su.Trace{
		testutil.Flat(3, 0, 100, 4, 1),
		testutil.Flat(1, 0, 200, 4, 2),
		testutil.Flat(3, 0, 300, 4, 3), // outside aph=100
		testutil.Flat(2, 0, 50, 4, 4),
		testutil.Flat(3, 100, 300, 4, 5),
	}

	set, st, err := Ingest(&testutil.SliceReader{Traces: traces}, 100)
	require.NoError(t, err)
	assert.Equal(t, Stats{Read: 5, Kept: 4, Discarded: 1}, st)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []int32{1, 2, 3}, set.IDs())

	g, ok := set.Group(3)
	require.True(t, ok)
	want := []*su.Trace{traces[0], traces[4]}
	if diff := cmp.Diff(want, g.Traces, cmp.AllowUnexported(su.Trace{})); diff != "" {
		t.Fatalf("group 3 mismatch (-want +got):\n%s", diff)
	}
	assert.Same(t, traces[0], g.First())
}

func TestIngestEveryTraceInExactlyOneGroup(t *testing.T) {
	var traces []*su.Trace
	for i := int32(0); i < 60; i++ {
		traces = append(traces, testutil.Flat(i%7, -i*5, i*5, 2, float64(i)))
	}
	const aph = 120

	set, _, err := Ingest(&testutil.SliceReader{Traces: traces}, aph)
	require.NoError(t, err)

	seen := make(map[*su.Trace]int)
	for _, id := range set.IDs() {
		g, _ := set.Group(id)
		for _, tr := range g.Traces {
			assert.Equal(t, id, tr.CDP)
			seen[tr]++
		}
	}
	for _, tr := range traces {
		if tr.HalfOffsetLen() <= aph {
			assert.Equal(t, 1, seen[tr], "trace with h=%v", tr.HalfOffsetLen())
		} else {
			assert.Zero(t, seen[tr], "trace with h=%v", tr.HalfOffsetLen())
		}
	}
}

func TestIngestBoundaryIsInclusive(t *testing.T) {
	set, st, err := Ingest(&testutil.SliceReader{Traces: []*su.Trace{testutil.Flat(1, 0, 200, 1, 0)}}, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Kept)
	assert.Equal(t, 1, set.Len())
}

func TestIngestPropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	_, st, err := Ingest(&testutil.SliceReader{Traces: []*su.Trace{testutil.Flat(1, 0, 0, 1, 0)}, Err: boom}, 10)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, st.Read)
}

func TestInRange(t *testing.T) {
	set := NewSet()
	for _, id := range []int32{9, -2, 4, 7, 1} {
		set.Add(testutil.Flat(id, 0, 0, 1, 0))
	}
	assert.Equal(t, []int32{1, 4, 7}, set.InRange(1, 7))
	assert.Empty(t, set.InRange(10, 20))
	assert.Equal(t, []int32{-2, 1, 4, 7, 9}, set.InRange(-100, 100))
}

func TestIngestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.su")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := su.NewWriter(f, nil)
	require.NoError(t, w.Write(testutil.Flat(5, 0, 10, 3, 1)))
	require.NoError(t, w.Write(testutil.Flat(6, 0, 10, 3, 1)))
	require.NoError(t, w.Flush())
	require.NoError(t, f.Close())

	set, st, err := IngestFile(path, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Kept)
	assert.Equal(t, []int32{5, 6}, set.IDs())
}

func TestIngestFileMissing(t *testing.T) {
	_, _, err := IngestFile(filepath.Join(t.TempDir(), "missing.su"), nil, 100)
	var openErr *InputOpenError
	require.ErrorAs(t, err, &openErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.su")
}
