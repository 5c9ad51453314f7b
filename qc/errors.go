package qc

import "errors"

var (
	errEmptyGather = errors.New("qc: gather has no traces")
	errNoSamples   = errors.New("qc: gather has no samples")
	errNoInterval  = errors.New("qc: sample interval is zero")
)
