package gather

import (
	"encoding/binary"
	"os"

	"github.com/cwbudde/algo-velan/su"
)

// IngestFile opens path as an SU stream and ingests it. Open failures are
// returned as *InputOpenError.
func IngestFile(path string, order binary.ByteOrder, aph float64) (*Set, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, &InputOpenError{Path: path, Err: err}
	}
	defer f.Close()
	return Ingest(su.NewReader(f, order), aph)
}
