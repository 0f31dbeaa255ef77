// Package brs provides a compact binary format for serializing structured objects as
// a flat sequence of named hunks.
//
// Every hunk is a name of up to 255 bytes and an opaque payload of up to 16 MiB. Objects
// write their fields one hunk each; nested objects are written into a sub-buffer that
// becomes the payload of a single hunk, and arrays become repeated hunks carrying an
// element index. Readers walk the buffer and dispatch each hunk by name, skipping names
// they do not know, which lets producers add fields without breaking older consumers.
//
// # Core Features
//
//   - Self-describing names, no schema needed on either side
//   - Sub-buffers for nested objects, with a bounded decoding depth
//   - Indexed hunks for arrays, accepted in any order
//   - Typed accessors that refuse payloads of the wrong size
//   - Pooled encoder buffers and zero-copy payload views while decoding
//
// Integers and floats are stored in the producer's native byte order. Buffers are an
// exchange format between processes of the same architecture, not a portable archive.
//
// # Basic Usage
//
// Types implement codec.Marshaler and codec.Binder:
//
//	func (p *Point) MarshalBRS(e *codec.Encoder) error {
//	    if err := codec.Add(e, "x", p.X); err != nil {
//	        return err
//	    }
//	    return codec.Add(e, "y", p.Y)
//	}
//
//	func (p *Point) BindBRS(r *codec.Router) {
//	    codec.Bind(r, "x", &p.X)
//	    codec.Bind(r, "y", &p.Y)
//	}
//
//	buf, err := brs.Marshal(&p)
//	err = brs.Unmarshal(buf, &q)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec package,
// simplifying the most common use cases. For handlers, iterators and byte order
// control, use the codec package directly.
package brs

import (
	"github.com/arloliu/brs/codec"
	"github.com/arloliu/brs/section"
)

// Version is the format version written in the magic header.
const Version = section.Version

// NewEncoder creates an encoder for a top-level buffer, starting with the magic header.
//
// Available options:
//   - codec.WithMagic(true|false)
//   - codec.WithByteOrder(engine)
//   - codec.WithInitialSize(size)
//
// Example:
//
//	enc, err := brs.NewEncoder()
//	err = codec.Add(enc, "count", int32(3))
//	buf, err := enc.Finish()
func NewEncoder(opts ...codec.EncoderOption) (*codec.Encoder, error) {
	return codec.NewEncoder(opts...)
}

// NewSubEncoder creates an encoder for a sub-buffer, to be embedded with Encoder.AddBuffer.
func NewSubEncoder(opts ...codec.EncoderOption) (*codec.Encoder, error) {
	return codec.NewSubEncoder(opts...)
}

// NewDecoder creates a decoder.
//
// Available options:
//   - codec.WithIncludesMagic(true|false)
//   - codec.WithMaxDepth(depth)
//   - codec.WithDecoderByteOrder(engine)
//   - codec.WithLogger(logger)
func NewDecoder(opts ...codec.DecoderOption) (*codec.Decoder, error) {
	return codec.NewDecoder(opts...)
}

// Decode walks a top-level buffer and calls h once per hunk.
//
// Parameters:
//   - data: buffer starting with the magic header
//   - h: handler receiving every hunk in buffer order
//
// Returns:
//   - error: errs.ErrMagicMismatch or errs.ErrTruncatedBuffer
func Decode(data []byte, h codec.Handler) error {
	return codec.Decode(data, true, h)
}

// DecodeSub walks a sub-buffer, which carries no magic header, and calls h once per hunk.
// The sub-buffer is decoded at depth 0; handlers recursing into nested payloads use
// codec.NestedHandler instead.
func DecodeSub(payload []byte, h codec.Handler) error {
	return codec.Decode(payload, false, h)
}

// Marshal encodes m into a new top-level buffer.
func Marshal(m codec.Marshaler, opts ...codec.EncoderOption) ([]byte, error) {
	return codec.Marshal(m, opts...)
}

// Unmarshal decodes a top-level buffer into b.
func Unmarshal(data []byte, b codec.Binder, opts ...codec.DecoderOption) error {
	return codec.Unmarshal(data, b, opts...)
}

// Fingerprint returns an xxHash64 digest of the hunks in a top-level buffer.
//
// Buffers holding the same hunks in the same order share a fingerprint, whatever their
// byte order, which makes it suitable for deduplication and change detection.
func Fingerprint(data []byte) (uint64, error) {
	sum, _, err := codec.Fingerprint(nil, data)
	return sum, err
}
