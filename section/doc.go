// Package section defines the low-level binary structures and constants of the brs format.
//
// This package owns the byte layout: the magic header, the packed hunk header word,
// the index marker and the index field. It does not walk buffers; the codec package
// builds its encoder and decoder on top of these primitives.
//
// # Buffer Structure
//
// A top-level buffer starts with the magic header and continues with zero or more hunks:
//
//	┌──────────────────────────────────────────────────────┐
//	│ Magic (4 bytes): 'B' 'R' 'S' <version=1>             │
//	├──────────────────────────────────────────────────────┤
//	│ Index marker (4 bytes, 0xFFFFFFFF, indexed hunks)    │
//	│ Hunk header (4 bytes)                                │
//	│ Name (name_length bytes)                             │
//	│ Payload (payload_length bytes)                       │
//	│ Index (4 bytes, signed, indexed hunks)               │
//	├──────────────────────────────────────────────────────┤
//	│ ... more hunks ...                                   │
//	└──────────────────────────────────────────────────────┘
//
// A sub-buffer, embedded as the payload of another hunk, has the same layout without
// the magic header.
//
// # Hunk Header Format
//
// The header is one 32-bit word:
//
//	Bits   | Field          | Range
//	-------|----------------|------------------
//	0-7    | name_length    | 0-255
//	8-31   | payload_length | 0-16,777,215
//
// The split point is fixed. The word itself is stored in the producer's native byte
// order, so on a little-endian host a 6-byte name with a 1-byte payload is written
// as 06 01 00 00. Buffers are only portable between hosts sharing the same order.
//
// # Index Marker
//
// The header has no spare bit to flag an indexed hunk, so the word 0xFFFFFFFF is
// reserved: when it appears where a header is expected, the next word is the real
// header and the hunk is followed by a 4-byte index. The only header that would
// pack to the marker (a 255-byte name with a 16,777,215-byte payload) is refused
// with errs.ErrOverflow.
//
// # Thread Safety
//
// All functions in this package are pure and safe for concurrent use.
package section
