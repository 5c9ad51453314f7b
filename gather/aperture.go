package gather

import "github.com/cwbudde/algo-velan/su"

// ApertureParams holds the run-wide aperture configuration.
type ApertureParams struct {
	// HalfOffset is the maximum half-offset; already enforced by Ingest.
	HalfOffset float64
	// Tau is the half-width of the coherence time window in seconds.
	Tau float64
	// Midpoint is the midpoint-direction aperture. It is stored for the
	// coherence function but never used to filter traces.
	Midpoint float64
}

// Aperture is the read-only search context for one CDP.
type Aperture struct {
	CDP int32
	// MX, MY is the midpoint of the group's first trace.
	MX, MY float64
	ApertureParams
	// Traces aliases the group's trace list and must not be modified.
	Traces []*su.Trace
}

// NewAperture builds the aperture for g.
func NewAperture(g *Group, p ApertureParams) (*Aperture, error) {
	first := g.First()
	if first == nil {
		return nil, ErrEmptyAperture
	}
	mx, my := first.Midpoint()
	return &Aperture{
		CDP:            g.CDP,
		MX:             mx,
		MY:             my,
		ApertureParams: p,
		Traces:         g.Traces,
	}, nil
}

// NS returns the sample count of the first trace, which sets the number of
// scanned time samples.
func (a *Aperture) NS() int {
	return len(a.Traces[0].Data)
}

// SampleInterval returns the first trace's sample interval in seconds.
func (a *Aperture) SampleInterval() float64 {
	return a.Traces[0].SampleInterval()
}
