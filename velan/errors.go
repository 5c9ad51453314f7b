package velan

import "errors"

var (
	// ErrNothingToProcess is returned by Runner.Run when no CDP falls in range.
	ErrNothingToProcess = errors.New("velan: nothing to process")
	// ErrInvalidGrid is returned for a velocity grid with no candidates or
	// non-finite bounds.
	ErrInvalidGrid = errors.New("velan: invalid velocity grid")
)
