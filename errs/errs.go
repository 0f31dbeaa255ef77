// Package errs defines the sentinel errors returned by the brs packages.
//
// Errors are returned wrapped with context, so callers should match them with
// errors.Is rather than by equality:
//
//	if err := codec.Decode(buf, true, handler); errors.Is(err, errs.ErrTruncatedBuffer) {
//	    // the buffer is incomplete or corrupt
//	}
package errs

import (
	"errors"
	"fmt"
)

// Encoding errors.
var (
	// ErrOverflow is returned when a hunk name or payload does not fit in its header field,
	// or when the packed header would collide with the reserved index marker word.
	ErrOverflow = errors.New("name or hunk too large")
	// ErrInvalidIndex is returned when a hunk is written with an index below -1. Decoders
	// wrap it together with ErrTruncatedBuffer when an index marker is followed by a
	// negative index.
	ErrInvalidIndex = errors.New("invalid hunk index")
	// ErrMagicAlreadyAdded is returned when the magic header is appended to a non-empty buffer.
	ErrMagicAlreadyAdded = errors.New("magic must be the first bytes of a buffer")
	// ErrNestedMagic is returned when a buffer carrying a magic header is embedded as a sub-buffer.
	ErrNestedMagic = errors.New("sub-buffer must not carry a magic header")
	// ErrEncoderFinished is returned when an encoder is used after Finish.
	ErrEncoderFinished = errors.New("encoder already finished")
	// ErrDuplicateHunk is returned by encoders checking for duplicates when a plain name,
	// or a name and index pair, is written twice.
	ErrDuplicateHunk = errors.New("duplicate hunk")
	// ErrInvalidByteOrder is returned when a nil byte order engine is configured.
	ErrInvalidByteOrder = errors.New("invalid byte order engine")
)

// Decoding errors.
var (
	// ErrMagicMismatch is returned when a top-level buffer does not start with the
	// supported tag and version.
	ErrMagicMismatch = errors.New("magic mismatch")
	// ErrTruncatedBuffer is returned when a buffer ends in the middle of a hunk, or
	// leaves unparsed bytes behind.
	ErrTruncatedBuffer = errors.New("truncated buffer")
	// ErrDepthExceeded is returned when sub-buffers are nested deeper than the decoder allows.
	// It is a truncated buffer error: errors.Is(ErrDepthExceeded, ErrTruncatedBuffer) is true.
	ErrDepthExceeded = fmt.Errorf("%w: nesting depth exceeded", ErrTruncatedBuffer)
	// ErrNilHandler is returned when a nil handler is given to a decoder or dispatcher.
	ErrNilHandler = errors.New("nil hunk handler")
)

// Accessor errors.
var (
	// ErrSizeMismatch is returned by typed accessors when the payload length differs from
	// the size of the requested type. This usually means the wrong type was assumed for a name.
	ErrSizeMismatch = errors.New("unexpected size, wrong type?")
	// ErrNotANumber is returned when an extended precision payload holds a NaN, which
	// big.Float cannot represent.
	ErrNotANumber = errors.New("extended value is NaN")
	// ErrUnknownKind is returned when a value kind name is not recognized.
	ErrUnknownKind = errors.New("unknown value kind")
)
