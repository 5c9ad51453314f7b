// Package su reads and writes Seismic Unix trace records.
//
// A record is a 240-byte SEG-Y style trace header followed by ns IEEE
// float32 samples. SU files carry no file header and no byte-order marker;
// the order is chosen by the caller (little endian by default, which is
// what SU produces on x86 hosts).
//
// Only the header fields needed for CMP velocity analysis are decoded.
// All other header bytes are carried through unchanged so that a trace
// cloned from an input record keeps its full header on output.
package su
