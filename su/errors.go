package su

import "errors"

var (
	// ErrShortHeader is returned when the stream ends inside a trace header.
	ErrShortHeader = errors.New("su: truncated trace header")
	// ErrShortData is returned when the stream ends inside a trace's samples.
	ErrShortData = errors.New("su: truncated trace samples")
	// ErrTooManySamples is returned when a trace holds more samples than
	// the 16-bit ns header field can describe.
	ErrTooManySamples = errors.New("su: trace exceeds 65535 samples")
)
