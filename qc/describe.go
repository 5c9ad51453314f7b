package qc

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-velan/gather"
)

// GatherInfo summarizes one CDP gather.
type GatherInfo struct {
	CDP    int32
	Traces int
	NS     int
	DT     float64 // seconds

	MinHalfOffset  float64
	MaxHalfOffset  float64
	MeanHalfOffset float64

	DominantFreq float64 // Hz, 0 when the gather is silent
	SuggestedTau float64 // seconds, half the dominant period
}

// Describe computes the summary of g.
func Describe(g *gather.Group) (GatherInfo, error) {
	info := GatherInfo{CDP: g.CDP, Traces: len(g.Traces)}
	first := g.First()
	if first == nil {
		return info, errEmptyGather
	}
	info.NS = len(first.Data)
	info.DT = first.SampleInterval()

	h := make([]float64, len(g.Traces))
	for i, tr := range g.Traces {
		h[i] = tr.HalfOffsetLen()
	}
	info.MinHalfOffset = floats.Min(h)
	info.MaxHalfOffset = floats.Max(h)
	info.MeanHalfOffset = stat.Mean(h, nil)

	f, err := DominantFrequency(g.Traces)
	if err != nil {
		return info, err
	}
	info.DominantFreq = f
	if f > 0 {
		info.SuggestedTau = 0.5 / f
	}
	return info, nil
}
