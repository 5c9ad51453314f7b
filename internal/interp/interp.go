package interp

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects an interpolation kernel.
type Kind int

const (
	Linear Kind = iota
	Hermite
)

// String returns the kernel name accepted by [ParseKind].
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a kernel name to a Kind. The empty string selects Linear.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "hermite", "cubic":
		return Hermite, nil
	default:
		return Linear, fmt.Errorf("interp: unknown kind %q", s)
	}
}

// At returns the amplitude of samples at fractional index pos using kernel k.
// pos outside [0, len(samples)-1] yields 0.
func (k Kind) At(samples []float64, pos float64) float64 {
	n := len(samples)
	if n == 0 || pos < 0 || pos > float64(n-1) || math.IsNaN(pos) {
		return 0
	}
	i := int(pos)
	frac := pos - float64(i)
	if i == n-1 {
		return samples[i]
	}
	if k == Hermite && i >= 1 && i+2 < n {
		return Hermite4(frac, samples[i-1], samples[i], samples[i+1], samples[i+2])
	}
	return samples[i] + frac*(samples[i+1]-samples[i])
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
