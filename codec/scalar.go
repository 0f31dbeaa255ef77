package codec

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

// Scalar is the set of fixed-width types that encode as their in-memory representation.
//
// Only the exact predeclared types are accepted. Values of named types such as
// `type Celsius float64` must be converted before encoding.
type Scalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | complex64 | complex128 | bool
}

// SizeOf returns the payload size of the scalar type T.
func SizeOf[T Scalar]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// appendScalar appends the bytes of v to dst in the engine's byte order.
func appendScalar[T Scalar](dst []byte, v T, engine endian.EndianEngine) []byte {
	switch x := any(v).(type) {
	case int8:
		return append(dst, byte(x))
	case uint8:
		return append(dst, x)
	case bool:
		if x {
			return append(dst, 1)
		}

		return append(dst, 0)
	case int16:
		return engine.AppendUint16(dst, uint16(x)) //nolint:gosec
	case uint16:
		return engine.AppendUint16(dst, x)
	case int32:
		return engine.AppendUint32(dst, uint32(x)) //nolint:gosec
	case uint32:
		return engine.AppendUint32(dst, x)
	case int64:
		return engine.AppendUint64(dst, uint64(x)) //nolint:gosec
	case uint64:
		return engine.AppendUint64(dst, x)
	case float32:
		return engine.AppendUint32(dst, math.Float32bits(x))
	case float64:
		return engine.AppendUint64(dst, math.Float64bits(x))
	case complex64:
		dst = engine.AppendUint32(dst, math.Float32bits(real(x)))
		return engine.AppendUint32(dst, math.Float32bits(imag(x)))
	case complex128:
		dst = engine.AppendUint64(dst, math.Float64bits(real(x)))
		return engine.AppendUint64(dst, math.Float64bits(imag(x)))
	}

	return dst
}

// decodeScalar reinterprets payload as a T after checking that its length is exactly SizeOf[T].
func decodeScalar[T Scalar](payload []byte, engine endian.EndianEngine) (T, error) {
	var out T

	if want := SizeOf[T](); len(payload) != want {
		return out, fmt.Errorf("%w: %T needs %d bytes, payload has %d", errs.ErrSizeMismatch, out, want, len(payload))
	}

	switch p := any(&out).(type) {
	case *int8:
		*p = int8(payload[0]) //nolint:gosec
	case *uint8:
		*p = payload[0]
	case *bool:
		*p = payload[0] != 0
	case *int16:
		*p = int16(engine.Uint16(payload)) //nolint:gosec
	case *uint16:
		*p = engine.Uint16(payload)
	case *int32:
		*p = int32(engine.Uint32(payload)) //nolint:gosec
	case *uint32:
		*p = engine.Uint32(payload)
	case *int64:
		*p = int64(engine.Uint64(payload)) //nolint:gosec
	case *uint64:
		*p = engine.Uint64(payload)
	case *float32:
		*p = math.Float32frombits(engine.Uint32(payload))
	case *float64:
		*p = math.Float64frombits(engine.Uint64(payload))
	case *complex64:
		*p = complex(math.Float32frombits(engine.Uint32(payload[:4])), math.Float32frombits(engine.Uint32(payload[4:])))
	case *complex128:
		*p = complex(math.Float64frombits(engine.Uint64(payload[:8])), math.Float64frombits(engine.Uint64(payload[8:])))
	}

	return out, nil
}
