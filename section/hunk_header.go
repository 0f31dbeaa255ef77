package section

import (
	"fmt"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

// HunkHeader holds the two lengths packed into the word preceding every hunk.
//
// In memory the lengths are kept as int to avoid conversions at the call sites.
// On the wire they are packed into one 32-bit word: bits 0-7 hold NameLen and
// bits 8-31 hold PayloadLen. The word is written in the engine's byte order.
type HunkHeader struct {
	NameLen    int // length of the name following the header, 0-255
	PayloadLen int // length of the payload following the name, 0-16,777,215
}

// NewHunkHeader creates a header for the given lengths and validates that it can be packed.
//
// Returns:
//   - HunkHeader: the header
//   - error: ErrOverflow if either length does not fit its field
func NewHunkHeader(nameLen, payloadLen int) (HunkHeader, error) {
	h := HunkHeader{NameLen: nameLen, PayloadLen: payloadLen}
	if _, err := h.Pack(); err != nil {
		return HunkHeader{}, err
	}

	return h, nil
}

// Pack packs the header into its 32-bit word.
//
// The fields are masked into place and then re-derived from the packed word; any
// difference with the original lengths means a field was truncated and is reported
// as an overflow. A header packing to IndexMarker is rejected as well.
//
// Returns:
//   - uint32: packed header word
//   - error: ErrOverflow if the lengths cannot be represented
func (h HunkHeader) Pack() (uint32, error) {
	word := uint32(h.NameLen)&nameMask | (uint32(h.PayloadLen)&payloadMask)<<payloadShift //nolint:gosec

	back := UnpackHunkHeader(word)
	if back != h {
		return 0, fmt.Errorf("%w: name length %d (max %d), payload length %d (max %d)",
			errs.ErrOverflow, h.NameLen, MaxNameLength, h.PayloadLen, MaxPayloadLength)
	}

	if word == IndexMarker {
		return 0, fmt.Errorf("%w: header collides with the index marker", errs.ErrOverflow)
	}

	return word, nil
}

// UnpackHunkHeader splits a packed header word into its two lengths.
func UnpackHunkHeader(word uint32) HunkHeader {
	return HunkHeader{
		NameLen:    int(word & nameMask),
		PayloadLen: int(word >> payloadShift),
	}
}

// AppendTo packs the header and appends it to dst using the engine's byte order.
// dst is returned unchanged on error.
func (h HunkHeader) AppendTo(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	word, err := h.Pack()
	if err != nil {
		return dst, err
	}

	return engine.AppendUint32(dst, word), nil
}

// Size returns the number of bytes the header, name and payload occupy together.
func (h HunkHeader) Size() int {
	return HunkHeaderSize + h.NameLen + h.PayloadLen
}

// ParseHunkWord reads the raw header word at the start of data.
//
// Returns:
//   - uint32: the word, which is either a packed header or IndexMarker
//   - error: ErrTruncatedBuffer if data holds fewer than HunkHeaderSize bytes
func ParseHunkWord(data []byte, engine endian.EndianEngine) (uint32, error) {
	if len(data) < HunkHeaderSize {
		return 0, fmt.Errorf("%w: need %d bytes for hunk header, have %d",
			errs.ErrTruncatedBuffer, HunkHeaderSize, len(data))
	}

	return engine.Uint32(data[:HunkHeaderSize]), nil
}

// AppendIndexMarker appends the index marker word to dst. It precedes the header of an indexed hunk.
func AppendIndexMarker(dst []byte, engine endian.EndianEngine) []byte {
	return engine.AppendUint32(dst, IndexMarker)
}

// AppendIndex appends a signed hunk index to dst.
func AppendIndex(dst []byte, index int32, engine endian.EndianEngine) []byte {
	return engine.AppendUint32(dst, uint32(index)) //nolint:gosec
}

// ParseIndex reads the signed hunk index at the start of data.
//
// Returns:
//   - int32: the index
//   - error: ErrTruncatedBuffer if data holds fewer than IndexSize bytes
func ParseIndex(data []byte, engine endian.EndianEngine) (int32, error) {
	if len(data) < IndexSize {
		return 0, fmt.Errorf("%w: need %d bytes for hunk index, have %d",
			errs.ErrTruncatedBuffer, IndexSize, len(data))
	}

	return int32(engine.Uint32(data[:IndexSize])), nil //nolint:gosec
}
