package codec

import (
	"fmt"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/internal/logger"
	"github.com/arloliu/brs/internal/options"
)

// DefaultMaxDepth is the deepest sub-buffer nesting a decoder accepts by default.
// The top-level buffer is depth 0.
const DefaultMaxDepth = 64

// DecoderConfig holds the settings of a Decoder.
type DecoderConfig struct {
	includesMagic bool
	maxDepth      int
	engine        endian.EndianEngine
	logger        logger.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// NewDecoderConfig returns the default configuration: top-level buffers start with the
// magic header, nesting is limited to DefaultMaxDepth and the native byte order is used.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		includesMagic: true,
		maxDepth:      DefaultMaxDepth,
		engine:        endian.GetNativeEngine(),
		logger:        logger.Discard(),
	}
}

// WithIncludesMagic sets whether buffers passed to Decode start with the magic header.
func WithIncludesMagic(includes bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.includesMagic = includes
	})
}

// WithMaxDepth limits how deeply sub-buffers may be nested.
func WithMaxDepth(depth int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if depth < 0 {
			return fmt.Errorf("invalid max depth %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithDecoderByteOrder reads buffers written in the given byte order instead of the native one.
func WithDecoderByteOrder(engine endian.EndianEngine) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if engine == nil {
			return errs.ErrInvalidByteOrder
		}
		c.engine = engine

		return nil
	})
}

// WithLogger sets the logger receiving decode diagnostics at debug level.
func WithLogger(l logger.Logger) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		if l == nil {
			l = logger.Discard()
		}
		c.logger = l
	})
}
