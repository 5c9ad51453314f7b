// Package interp reads trace amplitudes at fractional sample positions.
//
// Available kernels, from cheapest to highest quality:
//
//   - [Linear]:  2-point linear interpolation
//   - [Hermite]: 4-point cubic Hermite, falling back to linear at trace edges
//
// Positions outside the trace read as zero, which is the convention used
// when moveout pushes a reflection past the recorded window.
package interp
