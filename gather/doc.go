// Package gather groups SU traces into common-midpoint gathers and derives
// the per-gather search context used by coherence scans.
//
// Ingestion is a single sequential pass: traces whose half-offset exceeds
// the aperture limit are dropped, the rest are appended to the group for
// their CDP id in arrival order. The resulting [Set] owns every kept trace
// for the lifetime of a run.
package gather
