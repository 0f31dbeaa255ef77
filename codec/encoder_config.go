package codec

import (
	"fmt"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/internal/options"
	"github.com/arloliu/brs/internal/pool"
)

// EncoderConfig holds the settings shared by every Encoder.
type EncoderConfig struct {
	magic          bool
	duplicateCheck bool
	initialSize    int
	engine         endian.EndianEngine
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// NewEncoderConfig returns the default configuration: a top-level buffer starting
// with the magic header, laid out in the native byte order.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		magic:  true,
		engine: endian.GetNativeEngine(),
	}
}

// Magic reports whether the encoder starts its buffer with the magic header.
func (c *EncoderConfig) Magic() bool {
	return c.magic
}

// Engine returns the byte order hunk headers and scalars are written in.
func (c *EncoderConfig) Engine() endian.EndianEngine {
	return c.engine
}

// WithMagic controls whether the buffer starts with the magic header.
//
// Top-level buffers carry the magic; sub-buffers embedded as a hunk payload must not.
// The default is true.
func WithMagic(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.magic = enabled
	})
}

// WithDuplicateCheck makes the encoder reject a plain name written twice, a name and
// index pair written twice, and a name used both as a plain value and as an array.
// The check costs a map lookup per hunk and is off by default.
func WithDuplicateCheck(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.duplicateCheck = enabled
	})
}

// WithInitialSize preallocates an unpooled buffer of the given capacity instead of
// taking one from the shared pool. Useful when the final size is known and large.
func WithInitialSize(size int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if size < 0 {
			return fmt.Errorf("invalid initial size %d", size)
		}
		c.initialSize = size

		return nil
	})
}

// WithByteOrder writes the buffer in the given byte order instead of the native one.
//
// Buffers written this way are only readable by a decoder configured with the same order.
func WithByteOrder(engine endian.EndianEngine) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if engine == nil {
			return errs.ErrInvalidByteOrder
		}
		c.engine = engine

		return nil
	})
}

// newBuffer returns the buffer the encoder writes into, and whether it came from the pool.
func (c *EncoderConfig) newBuffer() (*pool.ByteBuffer, bool) {
	if c.initialSize > 0 {
		return pool.NewByteBuffer(c.initialSize), false
	}

	return pool.GetHunkBuffer(), true
}
