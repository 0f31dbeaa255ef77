package codec

import (
	"fmt"
	"io"
	"math/big"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/internal/collision"
	"github.com/arloliu/brs/internal/options"
	"github.com/arloliu/brs/internal/pool"
	"github.com/arloliu/brs/section"
)

// NoIndex marks a hunk that is not an array element.
const NoIndex = section.NoIndex

// AppendMagic appends the 4-byte magic header to dst.
//
// It is only meaningful at the very start of a top-level buffer.
func AppendMagic(dst []byte) []byte {
	return section.AppendMagic(dst)
}

// AppendValue appends one hunk to dst using the native byte order.
//
// Pass NoIndex for a plain value, or an index >= 0 to mark the hunk as an array element.
// The append is all-or-nothing: on error dst is returned with its length unchanged.
//
// Parameters:
//   - dst: buffer to append to
//   - name: hunk name, at most 255 bytes
//   - payload: hunk payload, at most 16,777,215 bytes
//   - index: NoIndex or an array index >= 0
//
// Returns:
//   - []byte: the extended buffer
//   - error: ErrOverflow if name or payload is too long, or if a 255-byte name comes with a
//     16,777,215-byte payload: that header packs to 0xFFFFFFFF, the word reserved to mark
//     indexed hunks, so either limit may be reached but not both at once.
//     ErrInvalidIndex if index < -1.
func AppendValue(dst []byte, name string, payload []byte, index int32) ([]byte, error) {
	return appendHunk(dst, name, payload, index, endian.GetNativeEngine())
}

// hunkSize returns the encoded size of a hunk. The result is only meaningful for valid lengths.
func hunkSize(nameLen, payloadLen int, index int32) int {
	size := section.HunkHeaderSize + nameLen + payloadLen
	if index != NoIndex {
		size += section.IndexMarkerSize + section.IndexSize
	}

	return size
}

// appendHunk validates the hunk completely before writing any byte of it.
func appendHunk(dst []byte, name string, payload []byte, index int32, engine endian.EndianEngine) ([]byte, error) {
	if index < NoIndex {
		return dst, fmt.Errorf("%w: %d", errs.ErrInvalidIndex, index)
	}

	header, err := section.NewHunkHeader(len(name), len(payload))
	if err != nil {
		return dst, err
	}

	if index != NoIndex {
		dst = section.AppendIndexMarker(dst, engine)
	}

	dst, _ = header.AppendTo(dst, engine)
	dst = append(dst, name...)
	dst = append(dst, payload...)

	if index != NoIndex {
		dst = section.AppendIndex(dst, index, engine)
	}

	return dst, nil
}

// Marshaler is implemented by types that write themselves as a sequence of hunks.
type Marshaler interface {
	MarshalBRS(e *Encoder) error
}

// Encoder builds a buffer hunk by hunk.
//
// Every Add method either appends the complete hunk or leaves the buffer untouched
// and returns an error, so a failed call never corrupts the buffer.
//
// Note: The Encoder is NOT thread-safe. Each encoder instance should be used by a single goroutine at a time.
type Encoder struct {
	*EncoderConfig

	buf      *pool.ByteBuffer
	pooled   bool
	count    int
	finished bool
	tracker  *collision.Tracker // nil unless duplicate checking is enabled
}

// NewEncoder creates an encoder for a top-level buffer.
//
// Unless WithMagic(false) is given, the magic header is written immediately.
//
// Parameters:
//   - opts: Optional configuration (magic, byte order, initial size)
//
// Returns:
//   - *Encoder: encoder ready for Add calls
//   - error: configuration error if an option is invalid
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	e := &Encoder{EncoderConfig: config}
	e.buf, e.pooled = config.newBuffer()
	if config.duplicateCheck {
		e.tracker = collision.NewTracker()
	}
	if config.magic {
		e.buf.B = section.AppendMagic(e.buf.B)
	}

	return e, nil
}

// NewSubEncoder creates an encoder for a sub-buffer, which never carries the magic header.
func NewSubEncoder(opts ...EncoderOption) (*Encoder, error) {
	return NewEncoder(append(opts, WithMagic(false))...)
}

// AddMagic writes the magic header. The buffer must still be empty.
func (e *Encoder) AddMagic() error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if e.buf.Len() != 0 {
		return errs.ErrMagicAlreadyAdded
	}

	e.buf.B = section.AppendMagic(e.buf.B)
	e.magic = true

	return nil
}

// AddValue appends a hunk holding raw payload bytes.
func (e *Encoder) AddValue(name string, payload []byte) error {
	return e.AddValueAt(name, NoIndex, payload)
}

// AddValueAt appends an array element hunk holding raw payload bytes.
//
// Returns:
//   - error: ErrOverflow (see AppendValue for the limits), ErrInvalidIndex or
//     ErrEncoderFinished; the buffer is unchanged on error
func (e *Encoder) AddValueAt(name string, index int32, payload []byte) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	if e.tracker != nil {
		if err := e.tracker.Check(name, index); err != nil {
			return err
		}
	}

	if index >= NoIndex && len(name) <= section.MaxNameLength && len(payload) <= section.MaxPayloadLength {
		e.buf.Grow(hunkSize(len(name), len(payload), index))
	}

	b, err := appendHunk(e.buf.B, name, payload, index, e.engine)
	if err != nil {
		return fmt.Errorf("hunk %.64q: %w", name, err)
	}
	e.buf.B = b
	e.count++
	if e.tracker != nil {
		e.tracker.Add(name, index)
	}

	return nil
}

// AddString appends a hunk holding the bytes of s, without a terminator.
func (e *Encoder) AddString(name, s string) error {
	return e.AddStringAt(name, NoIndex, s)
}

// AddStringAt appends an array element hunk holding the bytes of s.
func (e *Encoder) AddStringAt(name string, index int32, s string) error {
	return e.AddValueAt(name, index, []byte(s))
}

// AddBytes appends a hunk holding an opaque byte buffer.
func (e *Encoder) AddBytes(name string, b []byte) error {
	return e.AddValueAt(name, NoIndex, b)
}

// AddBytesAt appends an array element hunk holding an opaque byte buffer.
func (e *Encoder) AddBytesAt(name string, index int32, b []byte) error {
	return e.AddValueAt(name, index, b)
}

// AddBuffer appends a hunk whose payload is the sub-buffer built by sub.
//
// sub must have been created with NewSubEncoder or WithMagic(false).
func (e *Encoder) AddBuffer(name string, sub *Encoder) error {
	return e.AddBufferAt(name, NoIndex, sub)
}

// AddBufferAt appends an array element hunk whose payload is the sub-buffer built by sub.
func (e *Encoder) AddBufferAt(name string, index int32, sub *Encoder) error {
	if sub == nil || sub.finished {
		return errs.ErrEncoderFinished
	}
	if sub.magic {
		return fmt.Errorf("hunk %.64q: %w", name, errs.ErrNestedMagic)
	}

	return e.AddValueAt(name, index, sub.buf.B)
}

// AddObject marshals m into a sub-buffer and appends it as one hunk.
func (e *Encoder) AddObject(name string, m Marshaler) error {
	return e.AddObjectAt(name, NoIndex, m)
}

// AddObjectAt marshals m into a sub-buffer and appends it as an array element hunk.
func (e *Encoder) AddObjectAt(name string, index int32, m Marshaler) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	sub, err := NewSubEncoder(WithByteOrder(e.engine), WithDuplicateCheck(e.duplicateCheck))
	if err != nil {
		return err
	}
	defer sub.Release()

	if err := m.MarshalBRS(sub); err != nil {
		return fmt.Errorf("marshal %.64q: %w", name, err)
	}

	return e.AddBufferAt(name, index, sub)
}

// AddExtended appends f as a 16-byte x87 extended precision value.
func (e *Encoder) AddExtended(name string, f *big.Float) error {
	return e.AddExtendedAt(name, NoIndex, f)
}

// AddExtendedAt appends f as an extended precision array element.
func (e *Encoder) AddExtendedAt(name string, index int32, f *big.Float) error {
	var scratch [ExtendedSize]byte
	return e.AddValueAt(name, index, appendExtended(scratch[:0], f, e.engine))
}

// Add appends a hunk holding the in-memory representation of a scalar.
func Add[T Scalar](e *Encoder, name string, v T) error {
	return AddAt(e, name, NoIndex, v)
}

// AddAt appends an array element hunk holding a scalar.
func AddAt[T Scalar](e *Encoder, name string, index int32, v T) error {
	var scratch [16]byte
	return e.AddValueAt(name, index, appendScalar(scratch[:0], v, e.engine))
}

// AddSlice appends one array element hunk per value, with indices 0 to len(values)-1.
//
// Hunks appended before a failing element are kept.
func AddSlice[T Scalar](e *Encoder, name string, values []T) error {
	for i, v := range values {
		if err := AddAt(e, name, int32(i), v); err != nil { //nolint:gosec
			return err
		}
	}

	return nil
}

// AddStrings appends one array element hunk per string, with indices 0 to len(values)-1.
func (e *Encoder) AddStrings(name string, values []string) error {
	for i, s := range values {
		if err := e.AddStringAt(name, int32(i), s); err != nil { //nolint:gosec
			return err
		}
	}

	return nil
}

// Len returns the number of bytes written so far, magic included.
func (e *Encoder) Len() int {
	if e.finished {
		return 0
	}

	return e.buf.Len()
}

// Count returns the number of hunks written so far.
func (e *Encoder) Count() int {
	return e.count
}

// Bytes returns a view of the buffer. It is only valid until the next call on the encoder.
func (e *Encoder) Bytes() []byte {
	if e.finished {
		return nil
	}

	return e.buf.Bytes()
}

// WriteTo writes the buffer built so far to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	if e.finished {
		return 0, errs.ErrEncoderFinished
	}

	return e.buf.WriteTo(w)
}

// Finish returns a copy of the encoded buffer and releases the encoder's memory.
//
// The encoder cannot be used after Finish unless Reset is called.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}

	out := e.buf.Clone()
	e.Release()

	return out, nil
}

// Reset discards everything written so far, keeping the configuration.
// The magic header is written again when enabled.
func (e *Encoder) Reset() {
	if e.finished {
		e.buf, e.pooled = e.newBuffer()
		e.finished = false
	}

	e.buf.Reset()
	e.count = 0
	if e.tracker != nil {
		e.tracker.Reset()
	}
	if e.magic {
		e.buf.B = section.AppendMagic(e.buf.B)
	}
}

// Release returns the encoder's memory to the pool without copying the buffer out.
// The encoder cannot be used afterwards unless Reset is called.
func (e *Encoder) Release() {
	if e.finished {
		return
	}
	if e.pooled {
		pool.PutHunkBuffer(e.buf)
	}
	e.buf = nil
	e.finished = true
}

// Marshal encodes m into a new top-level buffer.
func Marshal(m Marshaler, opts ...EncoderOption) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	if err := m.MarshalBRS(e); err != nil {
		e.Release()
		return nil, err
	}

	return e.Finish()
}
