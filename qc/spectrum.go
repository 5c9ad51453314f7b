package qc

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-velan/su"
)

// PowerSpectrum returns the Hann-windowed power spectrum summed over
// traces, bins 0..N/2 of an N-point FFT, where N is the next power of two
// of the longest trace. binHz is the bin spacing.
func PowerSpectrum(traces []*su.Trace) (power []float64, binHz float64, err error) {
	if len(traces) == 0 {
		return nil, 0, errEmptyGather
	}
	ns := 0
	for _, tr := range traces {
		ns = max(ns, len(tr.Data))
	}
	if ns == 0 {
		return nil, 0, errNoSamples
	}
	dt := traces[0].SampleInterval()
	if dt <= 0 {
		return nil, 0, errNoInterval
	}

	fftSize := nextPowerOf2(ns)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, 0, fmt.Errorf("qc: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	tapered := make([]float64, ns)
	power = make([]float64, fftSize/2+1)
	windows := make(map[int][]float64)
	for _, tr := range traces {
		n := len(tr.Data)
		if n == 0 {
			continue
		}
		w, ok := windows[n]
		if !ok {
			w = hann(n)
			windows[n] = w
		}
		vecmath.MulBlock(tapered[:n], tr.Data, w)
		for i := range in {
			in[i] = 0
		}
		for i, v := range tapered[:n] {
			in[i] = complex(v, 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return nil, 0, fmt.Errorf("qc: forward FFT failed: %w", err)
		}
		for k := range power {
			re, im := real(out[k]), imag(out[k])
			power[k] += re*re + im*im
		}
	}
	return power, 1 / (float64(fftSize) * dt), nil
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// bin of the gather's summed power spectrum. A silent gather yields 0.
func DominantFrequency(traces []*su.Trace) (float64, error) {
	power, binHz, err := PowerSpectrum(traces)
	if err != nil {
		return 0, err
	}
	if len(power) < 2 {
		return 0, nil
	}
	ac := power[1:]
	if floats.Max(ac) == 0 {
		return 0, nil
	}
	return float64(floats.MaxIdx(ac)+1) * binHz, nil
}

// hann returns a symmetric Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
	} else {
		for i := range w {
			w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		}
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
