package su

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ParseByteOrder maps "little"/"le" and "big"/"be" to a byte order.
// The empty string selects little endian.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("su: unknown byte order %q", s)
	}
}
