package gather

import (
	"errors"
	"fmt"
)

// ErrEmptyAperture is returned when a gather has no traces to scan.
var ErrEmptyAperture = errors.New("gather: aperture has no traces")

// InputOpenError reports that the trace input could not be opened.
type InputOpenError struct {
	Path string
	Err  error
}

func (e *InputOpenError) Error() string {
	return fmt.Sprintf("gather: open input %q: %v", e.Path, e.Err)
}

func (e *InputOpenError) Unwrap() error {
	return e.Err
}
