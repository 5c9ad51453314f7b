// Package velan runs constant-velocity semblance scans over CMP gathers.
//
// For every CDP in a requested id range (processed in ascending order) the
// [Runner] builds the gather's aperture, scans every time sample with a
// [Scanner] spread over a bounded worker pool, and emits three diagnostic
// traces: the best velocity, its coherence, and the stacked amplitude at
// that velocity, one sample per scanned time.
//
// The scan keeps the first candidate that strictly improves the running
// coherence maximum, so ties resolve to the lowest trial velocity. When no
// candidate scores above zero the pick defaults to the lowest velocity
// with zero coherence and zero stack.
package velan
