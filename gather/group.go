package gather

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/cwbudde/algo-velan/su"
)

// TraceReader yields traces until it returns io.EOF.
type TraceReader interface {
	Read() (*su.Trace, error)
}

// Group is the ordered trace list of one CDP.
type Group struct {
	CDP    int32
	Traces []*su.Trace
}

// First returns the first trace in arrival order, or nil for an empty group.
func (g *Group) First() *su.Trace {
	if len(g.Traces) == 0 {
		return nil
	}
	return g.Traces[0]
}

// Set maps CDP ids to their groups.
type Set struct {
	groups map[int32]*Group
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{groups: make(map[int32]*Group)}
}

// Add appends t to the group for its CDP, creating the group on first use.
func (s *Set) Add(t *su.Trace) {
	g, ok := s.groups[t.CDP]
	if !ok {
		g = &Group{CDP: t.CDP}
		s.groups[t.CDP] = g
	}
	g.Traces = append(g.Traces, t)
}

// Len returns the number of distinct CDPs.
func (s *Set) Len() int {
	return len(s.groups)
}

// Group returns the group for cdp, if any.
func (s *Set) Group(cdp int32) (*Group, bool) {
	g, ok := s.groups[cdp]
	return g, ok
}

// IDs returns all CDP ids in ascending order.
func (s *Set) IDs() []int32 {
	ids := make([]int32, 0, len(s.groups))
	for id := range s.groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// InRange returns the ascending CDP ids within [lo, hi].
func (s *Set) InRange(lo, hi int32) []int32 {
	var ids []int32
	for _, id := range s.IDs() {
		if id >= lo && id <= hi {
			ids = append(ids, id)
		}
	}
	return ids
}

// Stats counts traces seen during ingestion.
type Stats struct {
	Read      int
	Kept      int
	Discarded int
}

// Ingest reads r to exhaustion and groups every trace whose squared
// half-offset does not exceed aph².
func Ingest(r TraceReader, aph float64) (*Set, Stats, error) {
	set := NewSet()
	var st Stats
	limit := aph * aph
	for {
		t, err := r.Read()
		if errors.Is(err, io.EOF) {
			return set, st, nil
		}
		if err != nil {
			return nil, st, fmt.Errorf("gather: read trace %d: %w", st.Read, err)
		}
		st.Read++
		if t.HalfOffsetSquared() > limit {
			st.Discarded++
			continue
		}
		st.Kept++
		set.Add(t)
	}
}
