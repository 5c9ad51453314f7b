package su

import "math"

// HeaderSize is the size in bytes of an SU trace header.
const HeaderSize = 240

// Byte offsets of the decoded header fields.
const (
	offCDP    = 20
	offOffset = 36
	offScalco = 70
	offSX     = 72
	offSY     = 76
	offGX     = 80
	offGY     = 84
	offNS     = 114
	offDT     = 116
)

// Trace is one decoded SU record.
//
// Coordinates are kept in raw header units; use the scaled accessors for
// geometry. NS is informational on read and recomputed from len(Data) on
// write.
type Trace struct {
	CDP    int32
	Offset int32
	Scalco int16
	SX     int32
	SY     int32
	GX     int32
	GY     int32
	NS     uint16
	DT     uint16 // sample interval in microseconds

	Data []float64

	raw [HeaderSize]byte
}

// scale applies the SEG-Y coordinate scalar.
func (t *Trace) scale(v int32) float64 {
	switch {
	case t.Scalco > 0:
		return float64(v) * float64(t.Scalco)
	case t.Scalco < 0:
		return float64(v) / float64(-int32(t.Scalco))
	default:
		return float64(v)
	}
}

// Source returns the scaled source coordinates.
func (t *Trace) Source() (x, y float64) {
	return t.scale(t.SX), t.scale(t.SY)
}

// Receiver returns the scaled receiver coordinates.
func (t *Trace) Receiver() (x, y float64) {
	return t.scale(t.GX), t.scale(t.GY)
}

// Midpoint returns the scaled source/receiver midpoint.
func (t *Trace) Midpoint() (x, y float64) {
	sx, sy := t.Source()
	gx, gy := t.Receiver()
	return (sx + gx) / 2, (sy + gy) / 2
}

// HalfOffset returns the scaled half-offset vector (receiver minus source, halved).
func (t *Trace) HalfOffset() (hx, hy float64) {
	sx, sy := t.Source()
	gx, gy := t.Receiver()
	return (gx - sx) / 2, (gy - sy) / 2
}

// HalfOffsetSquared returns hx²+hy².
func (t *Trace) HalfOffsetSquared() float64 {
	hx, hy := t.HalfOffset()
	return hx*hx + hy*hy
}

// HalfOffsetLen returns the half-offset magnitude.
func (t *Trace) HalfOffsetLen() float64 {
	return math.Sqrt(t.HalfOffsetSquared())
}

// SampleInterval returns dt in seconds.
func (t *Trace) SampleInterval() float64 {
	return float64(t.DT) * 1e-6
}

// CloneHeader returns a trace carrying a copy of t's header and no samples.
func (t *Trace) CloneHeader() *Trace {
	c := *t
	c.Data = nil
	return &c
}
