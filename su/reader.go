package su

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Reader decodes consecutive SU records from a stream.
type Reader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   []byte
	n     int
}

// NewReader returns a Reader decoding records in the given byte order.
// A nil order selects little endian.
func NewReader(r io.Reader, order binary.ByteOrder) *Reader {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{r: bufio.NewReaderSize(r, 1<<16), order: order}
}

// Read decodes the next record. It returns io.EOF when the stream ends
// cleanly on a record boundary.
func (r *Reader) Read() (*Trace, error) {
	t := &Trace{}
	if _, err := io.ReadFull(r.r, t.raw[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w (record %d): %v", ErrShortHeader, r.n, err)
	}
	t.decodeHeader(r.order)

	ns := int(t.NS)
	need := ns * 4
	if cap(r.buf) < need {
		r.buf = make([]byte, need)
	}
	buf := r.buf[:need]
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, fmt.Errorf("%w (record %d, ns=%d): %v", ErrShortData, r.n, ns, err)
	}
	t.Data = make([]float64, ns)
	for i := range t.Data {
		t.Data[i] = float64(math.Float32frombits(r.order.Uint32(buf[4*i:])))
	}
	r.n++
	return t, nil
}

// Count returns the number of records decoded so far.
func (r *Reader) Count() int {
	return r.n
}

func (t *Trace) decodeHeader(order binary.ByteOrder) {
	h := t.raw[:]
	t.CDP = int32(order.Uint32(h[offCDP:]))
	t.Offset = int32(order.Uint32(h[offOffset:]))
	t.Scalco = int16(order.Uint16(h[offScalco:]))
	t.SX = int32(order.Uint32(h[offSX:]))
	t.SY = int32(order.Uint32(h[offSY:]))
	t.GX = int32(order.Uint32(h[offGX:]))
	t.GY = int32(order.Uint32(h[offGY:]))
	t.NS = order.Uint16(h[offNS:])
	t.DT = order.Uint16(h[offDT:])
}
