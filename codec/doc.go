// Package codec encodes and decodes brs buffers.
//
// A brs buffer is a flat sequence of hunks, each a short name and an opaque payload.
// Top-level buffers start with a 4-byte magic header; a buffer stored as the payload of
// another hunk is a sub-buffer and has no magic. Integers and floats are stored as the
// producing host lays them out in memory, so buffers are meant to be read on the same
// architecture they were written on.
//
// # Core Types
//
// **Encoding**
//   - AppendMagic, AppendValue: append to a caller owned []byte
//   - Encoder: builds a buffer in pooled memory, with typed Add methods
//   - Marshaler: types that write themselves through an Encoder
//
// **Decoding**
//   - Decode, Decoder: walk a buffer and call a Handler per hunk
//   - Dispatcher: fans hunks out to several handlers
//   - Router: binds hunk names to typed fields, recursing into sub-buffers
//   - Collector, Digest: ready-made handlers
//
// **Accessors**
//   - ToInt8 ... ToComplex128, ToBool, ToChar, ToString, ToBytes, ToExtended
//   - Accessor: the same conversions for an explicit byte order
//
// # Encoding Workflow
//
//	enc, err := codec.NewEncoder()
//	codec.Add(enc, "red", int32(1))
//	enc.AddString("label", "orange")
//	codec.AddSlice(enc, "samples", []float64{0.5, 1.5})
//	buf, err := enc.Finish()
//
// # Decoding Workflow
//
//	err := codec.Decode(buf, true, codec.HandlerFunc(func(name string, payload []byte, index int32) bool {
//	    if name != "red" {
//	        return false
//	    }
//	    red, err := codec.ToInt32(payload)
//	    ...
//	    return true
//	}))
//
// Payloads handed to a Handler are views into the decoded buffer and are only valid
// during the call.
//
// # Nesting
//
// Sub-buffers are decoded by the handler that receives them. A NestedHandler gets the
// Scope of the current buffer and recurses with Scope.Decode, one level deeper each
// time; the decoder rejects depths above its MaxDepth with ErrDepthExceeded:
//
//	h := codec.NestedFunc(func(s codec.Scope, name string, payload []byte, _ int32) bool {
//	    if name != "child" {
//	        return false
//	    }
//	    err := s.Decode(payload, childHandler)
//	    ...
//	    return true
//	})
//
// Router does the depth bookkeeping itself:
//
//	r := codec.NewRouter(nil)
//	r.Nested("origin", func(sub *codec.Router) {
//	    codec.Bind(sub, "x", &p.X)
//	})
//	err := r.Decode(buf)
//
// # Thread Safety
//
// Decoder is safe for concurrent use. Encoder, Dispatcher, Router, Collector and Digest
// are not.
package codec
