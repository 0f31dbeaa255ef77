package section

import "math"

// Sizes of the fixed parts of a buffer, in bytes.
const (
	MagicSize       = 4 // tag (3 bytes) + version (1 byte)
	HunkHeaderSize  = 4 // packed name_length:8 | payload_length:24 word
	IndexMarkerSize = 4 // reserved word announcing an indexed hunk
	IndexSize       = 4 // signed 32-bit ordinal index
)

// Field widths of the hunk header word.
const (
	MaxNameLength    = math.MaxUint8 // largest name length, 255
	MaxPayloadLength = 0x00FFFFFF    // largest payload length, 16,777,215

	nameMask     = 0x000000FF // bits 0-7: name length
	payloadMask  = 0x00FFFFFF // bits 8-31 once shifted: payload length
	payloadShift = 8
)

const (
	// Version is the only format version this package reads and writes.
	Version uint8 = 1

	// IndexMarker is the reserved header word written before an indexed hunk.
	// No regular hunk header may pack to this value.
	IndexMarker uint32 = 0xFFFFFFFF

	// NoIndex is the index of a singleton hunk. Singleton hunks carry no index on the wire.
	NoIndex int32 = -1
)

// Magic is the 4-byte marker at offset 0 of every top-level buffer.
// The tag bytes are stored in reading order on every architecture.
var Magic = [MagicSize]byte{'B', 'R', 'S', Version}
