package codec

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/arloliu/brs/errs"
)

// MaxSliceIndex bounds the element index a Router accepts for slice fields, so a
// corrupt index cannot force a huge allocation.
const MaxSliceIndex = 1 << 20

// FieldFunc processes the payload of one named hunk.
type FieldFunc func(payload []byte, index int32) error

// Binder is implemented by types that register their fields on a Router.
type Binder interface {
	BindBRS(r *Router)
}

// Router is a Handler that routes hunks to per-name field functions.
//
// Field bindings convert the payload with the decoder's byte order and store the result
// through a pointer. Unknown names are ignored and reported as unhandled. Conversion
// errors do not stop decoding; they are collected and returned by Err.
//
//	var p Point
//	r := codec.NewRouter(nil)
//	codec.Bind(r, "x", &p.X)
//	codec.Bind(r, "y", &p.Y)
//	r.String("label", &p.Label)
//	err := r.Decode(buf)
//
// Note: Router is NOT thread-safe.
type Router struct {
	decoder *Decoder
	depth   int
	fields  map[string]FieldFunc
	errs    []error
}

var _ Handler = (*Router)(nil)

// NewRouter creates a router decoding with d. A nil d uses the default decoder.
func NewRouter(d *Decoder) *Router {
	if d == nil {
		d = defaultDecoder
	}

	return &Router{
		decoder: d,
		fields:  make(map[string]FieldFunc),
	}
}

// Depth returns the nesting level of the buffer the router handles.
func (r *Router) Depth() int {
	return r.depth
}

// Handle registers fn for hunks named name, replacing any previous registration.
func (r *Router) Handle(name string, fn FieldFunc) *Router {
	r.fields[name] = fn
	return r
}

// HandleHunk implements Handler.
func (r *Router) HandleHunk(name string, payload []byte, index int32) bool {
	fn, ok := r.fields[name]
	if !ok {
		return false
	}

	if err := fn(payload, index); err != nil {
		r.errs = append(r.errs, fmt.Errorf("field %.64q: %w", name, err))
	}

	return true
}

// Err returns the field errors collected so far, joined, or nil.
func (r *Router) Err() error {
	return errors.Join(r.errs...)
}

// Decode decodes a top-level buffer through the router.
//
// The returned error joins the decoder error, if any, with the field errors.
// Errors of a previous Decode are discarded.
func (r *Router) Decode(data []byte) error {
	r.errs = r.errs[:0]
	return r.finish(r.decoder.Decode(data, r))
}

func (r *Router) decodeSub(payload []byte) error {
	return r.finish(r.decoder.DecodeSub(payload, r, r.depth))
}

func (r *Router) finish(decodeErr error) error {
	if decodeErr == nil {
		return r.Err()
	}

	return errors.Join(append([]error{decodeErr}, r.errs...)...)
}

// child creates a router for a sub-buffer one level below r.
func (r *Router) child() *Router {
	c := NewRouter(r.decoder)
	c.depth = r.depth + 1

	return c
}

// Bind stores the scalar payload of hunks named name into dst.
func Bind[T Scalar](r *Router, name string, dst *T) {
	acc := r.decoder.Accessor()
	r.Handle(name, func(payload []byte, _ int32) error {
		v, err := Read[T](acc, payload)
		if err != nil {
			return err
		}
		*dst = v

		return nil
	})
}

// BindSlice stores array element hunks named name into dst at their index, growing dst as needed.
//
// Elements may arrive in any order. A hunk without an index is appended.
func BindSlice[T Scalar](r *Router, name string, dst *[]T) {
	acc := r.decoder.Accessor()
	r.Handle(name, func(payload []byte, index int32) error {
		v, err := Read[T](acc, payload)
		if err != nil {
			return err
		}

		return storeAt(dst, index, v)
	})
}

// storeAt places v at index in *dst, or appends it when index is NoIndex.
func storeAt[T any](dst *[]T, index int32, v T) error {
	if index == NoIndex {
		*dst = append(*dst, v)
		return nil
	}
	if index < 0 || index >= MaxSliceIndex {
		return fmt.Errorf("%w: %d", errs.ErrInvalidIndex, index)
	}

	if n := int(index) + 1; n > len(*dst) {
		*dst = append(*dst, make([]T, n-len(*dst))...)
	}
	(*dst)[index] = v

	return nil
}

// String stores the payload of hunks named name into dst.
func (r *Router) String(name string, dst *string) {
	r.Handle(name, func(payload []byte, _ int32) error {
		*dst = string(payload)
		return nil
	})
}

// Strings stores string array elements named name into dst at their index.
func (r *Router) Strings(name string, dst *[]string) {
	r.Handle(name, func(payload []byte, index int32) error {
		return storeAt(dst, index, string(payload))
	})
}

// Bytes stores a copy of the payload of hunks named name into dst.
func (r *Router) Bytes(name string, dst *[]byte) {
	r.Handle(name, func(payload []byte, _ int32) error {
		*dst = append((*dst)[:0], payload...)
		return nil
	})
}

// Extended stores the extended precision payload of hunks named name into dst.
func (r *Router) Extended(name string, dst **big.Float) {
	acc := r.decoder.Accessor()
	r.Handle(name, func(payload []byte, _ int32) error {
		f, err := acc.Extended(payload)
		if err != nil {
			return err
		}
		*dst = f

		return nil
	})
}

// Nested decodes the payload of hunks named name as a sub-buffer.
//
// bind registers the fields of the sub-buffer on a fresh router one level deeper.
// Errors of the sub-buffer, including ErrDepthExceeded, are reported as errors of this field.
func (r *Router) Nested(name string, bind func(sub *Router)) {
	r.Handle(name, func(payload []byte, _ int32) error {
		sub := r.child()
		bind(sub)

		return sub.decodeSub(payload)
	})
}

// NestedAt decodes indexed sub-buffer hunks named name, passing the element index to bind.
func (r *Router) NestedAt(name string, bind func(index int32, sub *Router)) {
	r.Handle(name, func(payload []byte, index int32) error {
		sub := r.child()
		bind(index, sub)

		return sub.decodeSub(payload)
	})
}

// Object decodes hunks named name as a sub-buffer bound by b.
func (r *Router) Object(name string, b Binder) {
	r.Nested(name, b.BindBRS)
}

// Unmarshal decodes a top-level buffer into b.
func Unmarshal(data []byte, b Binder, opts ...DecoderOption) error {
	d, err := NewDecoder(opts...)
	if err != nil {
		return err
	}

	r := NewRouter(d)
	b.BindBRS(r)

	return r.Decode(data)
}
