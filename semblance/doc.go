// Package semblance scores a trial stacking velocity on a CMP gather.
//
// For every trace the hyperbolic travel time
//
//	t(h) = sqrt(t0² + (2h/v)²)
//
// is evaluated, amplitudes are read in a window of ±tau around t(h), and the
// classic semblance ratio
//
//	S = Σ_k (Σ_i a_i(k))² / (N · Σ_k Σ_i a_i(k)²)
//
// is returned together with the mean amplitude at the window centre, which
// is the stacked value for that velocity. S lies in [0, 1] and reaches 1
// when every trace carries the same waveform along the trial hyperbola.
package semblance
