package su

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes SU records to a stream. Records are buffered; call Flush
// to push complete records to the underlying writer.
type Writer struct {
	w     *bufio.Writer
	order binary.ByteOrder
	buf   []byte
	n     int
}

// NewWriter returns a Writer encoding records in the given byte order.
// A nil order selects little endian.
func NewWriter(w io.Writer, order binary.ByteOrder) *Writer {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Writer{w: bufio.NewWriterSize(w, 1<<16), order: order}
}

// Write encodes t. The ns header field is taken from len(t.Data).
func (w *Writer) Write(t *Trace) error {
	if len(t.Data) > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrTooManySamples, len(t.Data))
	}
	need := HeaderSize + 4*len(t.Data)
	if cap(w.buf) < need {
		w.buf = make([]byte, need)
	}
	buf := w.buf[:need]

	copy(buf, t.raw[:])
	h := buf[:HeaderSize]
	w.order.PutUint32(h[offCDP:], uint32(t.CDP))
	w.order.PutUint32(h[offOffset:], uint32(t.Offset))
	w.order.PutUint16(h[offScalco:], uint16(t.Scalco))
	w.order.PutUint32(h[offSX:], uint32(t.SX))
	w.order.PutUint32(h[offSY:], uint32(t.SY))
	w.order.PutUint32(h[offGX:], uint32(t.GX))
	w.order.PutUint32(h[offGY:], uint32(t.GY))
	w.order.PutUint16(h[offNS:], uint16(len(t.Data)))
	w.order.PutUint16(h[offDT:], t.DT)

	for i, v := range t.Data {
		w.order.PutUint32(buf[HeaderSize+4*i:], math.Float32bits(float32(v)))
	}
	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("su: write record %d: %w", w.n, err)
	}
	w.n++
	return nil
}

// Flush writes any buffered records to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("su: flush: %w", err)
	}
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.n
}
