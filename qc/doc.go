// Package qc summarizes CMP gathers before a velocity scan.
//
// [Describe] reports the half-offset coverage of a gather and estimates its
// dominant frequency from the summed power spectrum of its traces. The
// dominant period gives a starting point for the semblance window: a
// half-width of half a period spans one full wavelet cycle.
package qc
