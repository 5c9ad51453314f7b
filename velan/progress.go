package velan

// Progress receives run completion updates.
type Progress interface {
	Report(fraction float64, status string)
}

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func(fraction float64, status string)

// Report calls f.
func (f ProgressFunc) Report(fraction float64, status string) {
	f(fraction, status)
}

// NopProgress discards updates.
type NopProgress struct{}

// Report does nothing.
func (NopProgress) Report(float64, string) {}

// Fraction returns done/(total-1) clamped to [0, 1]. A run with at most
// one CDP reports 1.
func Fraction(done, total int) float64 {
	if total <= 1 {
		return 1
	}
	f := float64(done) / float64(total-1)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
