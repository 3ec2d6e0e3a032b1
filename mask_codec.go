package goACL

import (
	"encoding/binary"
	"errors"
)

// MaskBlobSize is the encoded size of a Mask128 in bytes.
const MaskBlobSize = 16

// ErrInvalidMaskBlob is returned by DecodeMask for inputs that are not
// exactly MaskBlobSize bytes.
var ErrInvalidMaskBlob = errors.New("invalid mask blob size")

// EncodeMask renders a mask as a 16-byte big-endian blob: A (bits 0-63)
// first, then B (bits 64-127). This is the wire format the Redis store uses
// as the member value.
func EncodeMask(m Mask128) []byte {
	b := make([]byte, MaskBlobSize)
	binary.BigEndian.PutUint64(b[0:8], m.A)
	binary.BigEndian.PutUint64(b[8:16], m.B)
	return b
}

// DecodeMask parses a 16-byte big-endian blob produced by EncodeMask.
func DecodeMask(data []byte) (Mask128, error) {
	if len(data) != MaskBlobSize {
		return Mask128{}, ErrInvalidMaskBlob
	}
	return Mask128{
		A: binary.BigEndian.Uint64(data[0:8]),
		B: binary.BigEndian.Uint64(data[8:16]),
	}, nil
}
