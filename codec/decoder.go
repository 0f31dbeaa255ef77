package codec

import (
	"fmt"
	"iter"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/internal/options"
	"github.com/arloliu/brs/section"
)

// Decoder walks buffers and hands their hunks to a Handler.
//
// A Decoder holds no per-buffer state and is safe for concurrent use.
type Decoder struct {
	cfg DecoderConfig
}

var defaultDecoder = &Decoder{cfg: *NewDecoderConfig()}

// NewDecoder creates a decoder.
//
// Parameters:
//   - opts: Optional configuration (magic, max depth, byte order, logger)
//
// Returns:
//   - *Decoder: the decoder
//   - error: configuration error if an option is invalid
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	config := NewDecoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Decoder{cfg: *config}, nil
}

// MaxDepth returns the deepest nesting level the decoder accepts.
func (d *Decoder) MaxDepth() int {
	return d.cfg.maxDepth
}

// Accessor returns an Accessor reading payloads in the decoder's byte order.
func (d *Decoder) Accessor() Accessor {
	return NewAccessor(d.cfg.engine)
}

// Decode walks a top-level buffer, calling h once per hunk in buffer order.
//
// Decoding succeeds only when the last hunk ends exactly at the end of data. Hunks
// dispatched before an error is detected are not retracted, so a handler may have seen
// part of a corrupt buffer.
//
// Returns:
//   - error: ErrMagicMismatch, ErrTruncatedBuffer or ErrNilHandler
func (d *Decoder) Decode(data []byte, h Handler) error {
	return d.decode(data, d.cfg.includesMagic, h, 0)
}

// DecodeSub walks a sub-buffer, which never starts with the magic header.
//
// depth is the nesting level of the sub-buffer: 1 for a hunk of the top-level buffer,
// 2 for a hunk of that sub-buffer and so on. Handlers decoding nested payloads pass
// their own depth plus one, which lets the decoder stop runaway recursion.
//
// Returns:
//   - error: ErrDepthExceeded when depth is above MaxDepth, otherwise as Decode
func (d *Decoder) DecodeSub(payload []byte, h Handler, depth int) error {
	return d.decode(payload, false, h, depth)
}

func (d *Decoder) decode(data []byte, includesMagic bool, h Handler, depth int) error {
	if h == nil {
		return errs.ErrNilHandler
	}

	if depth > d.cfg.maxDepth {
		d.cfg.logger.Debug("nesting too deep", "depth", depth, "max_depth", d.cfg.maxDepth)
		return fmt.Errorf("%w: depth %d, limit %d", errs.ErrDepthExceeded, depth, d.cfg.maxDepth)
	}

	s, err := newScanner(data, includesMagic, d.cfg.engine)
	if err != nil {
		d.cfg.logger.Debug("bad magic", "depth", depth, "error", err)
		return err
	}

	for {
		hunk, ok, err := s.next()
		if err != nil {
			d.cfg.logger.Debug("decode failed", "depth", depth, "offset", s.pos, "error", err)
			return err
		}
		if !ok {
			return nil
		}

		if !dispatch(h, Scope{d: d, depth: depth}, hunk) {
			d.cfg.logger.Debug("unhandled hunk", "depth", depth, "name", hunk.Name, "index", hunk.Index)
		}
	}
}

func dispatch(h Handler, s Scope, hunk Hunk) bool {
	if nh, ok := h.(NestedHandler); ok {
		return nh.HandleNested(s, hunk.Name, hunk.Payload, hunk.Index)
	}

	return h.HandleHunk(hunk.Name, hunk.Payload, hunk.Index)
}

// Scope is the decoding context of the buffer a hunk was found in.
//
// The decoder hands it to every NestedHandler. Sub-buffers decoded through the scope
// sit one level deeper than the buffer they came from, so the decoder's MaxDepth holds
// however the handlers recurse. The zero Scope is a top-level pass of the default decoder.
type Scope struct {
	d     *Decoder
	depth int
}

// Depth returns the nesting level of the buffer being decoded, 0 for the top level.
func (s Scope) Depth() int {
	return s.depth
}

// Decoder returns the decoder running the pass.
func (s Scope) Decoder() *Decoder {
	if s.d == nil {
		return defaultDecoder
	}

	return s.d
}

// Decode walks payload as a sub-buffer one level below the scope, calling h once per hunk.
//
// Returns:
//   - error: ErrDepthExceeded when the sub-buffer is nested deeper than MaxDepth,
//     otherwise as Decoder.Decode
func (s Scope) Decode(payload []byte, h Handler) error {
	return s.Decoder().decode(payload, false, h, s.depth+1)
}

// Hunks returns an iterator over the hunks of a top-level buffer.
//
// Iteration stops after the first error, which is yielded with a zero Hunk. Payloads
// are views into data.
func (d *Decoder) Hunks(data []byte) iter.Seq2[Hunk, error] {
	return func(yield func(Hunk, error) bool) {
		s, err := newScanner(data, d.cfg.includesMagic, d.cfg.engine)
		if err != nil {
			yield(Hunk{}, err)
			return
		}

		for {
			hunk, ok, err := s.next()
			if err != nil {
				yield(Hunk{}, err)
				return
			}
			if !ok || !yield(hunk, nil) {
				return
			}
		}
	}
}

// Decode walks buffer with the default decoder configuration, calling h once per hunk.
//
// includesMagic must be true for top-level buffers and false for sub-buffers. The buffer
// is always decoded at depth 0, so Decode(payload, false, h) is meant for a sub-buffer
// held outside any decode pass. Handlers decoding nested payloads implement
// NestedHandler and recurse through Scope.Decode, which enforces the depth limit.
func Decode(data []byte, includesMagic bool, h Handler) error {
	return defaultDecoder.decode(data, includesMagic, h, 0)
}

// scanner cuts a buffer into hunks.
type scanner struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

func newScanner(data []byte, includesMagic bool, engine endian.EndianEngine) (*scanner, error) {
	s := &scanner{data: data, engine: engine}
	if includesMagic {
		if err := section.CheckMagic(data); err != nil {
			return nil, err
		}
		s.pos = section.MagicSize
	}

	return s, nil
}

// next returns the hunk at the cursor and advances past it.
// ok is false once the cursor sits exactly at the end of the buffer.
func (s *scanner) next() (Hunk, bool, error) {
	if s.pos == len(s.data) {
		return Hunk{}, false, nil
	}

	start := s.pos
	word, err := section.ParseHunkWord(s.data[s.pos:], s.engine)
	if err != nil {
		return Hunk{}, false, fmt.Errorf("offset %d: %w", start, err)
	}
	s.pos += section.HunkHeaderSize

	indexed := word == section.IndexMarker
	if indexed {
		word, err = section.ParseHunkWord(s.data[s.pos:], s.engine)
		if err != nil {
			return Hunk{}, false, fmt.Errorf("offset %d: %w", start, err)
		}
		if word == section.IndexMarker {
			return Hunk{}, false, fmt.Errorf("%w: offset %d: index marker without hunk header", errs.ErrTruncatedBuffer, start)
		}
		s.pos += section.HunkHeaderSize
	}

	header := section.UnpackHunkHeader(word)
	need := header.NameLen + header.PayloadLen
	if indexed {
		need += section.IndexSize
	}
	if left := len(s.data) - s.pos; need > left {
		return Hunk{}, false, fmt.Errorf("%w: hunk at offset %d needs %d bytes, %d left",
			errs.ErrTruncatedBuffer, start, need, left)
	}

	hunk := Hunk{Index: NoIndex}
	hunk.Name = string(s.data[s.pos : s.pos+header.NameLen])
	s.pos += header.NameLen

	end := s.pos + header.PayloadLen
	hunk.Payload = s.data[s.pos:end:end]
	s.pos = end

	if indexed {
		hunk.Index, _ = section.ParseIndex(s.data[s.pos:], s.engine)
		if hunk.Index < 0 {
			return Hunk{}, false, fmt.Errorf("%w: hunk at offset %d: %w %d after index marker",
				errs.ErrTruncatedBuffer, start, errs.ErrInvalidIndex, hunk.Index)
		}
		s.pos += section.IndexSize
	}

	return hunk, true, nil
}
