package codec

import (
	"fmt"

	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
)

// Render converts payload into the Go value of the given kind.
//
// Scalars come back as their Go type, KindChar as a one-character string, KindString as
// a string, KindExtended as a *big.Float and KindBytes and KindBuffer as a copy of the
// payload. Nested buffers are not decoded; callers recurse with DecodeSub.
func (a Accessor) Render(kind format.Kind, payload []byte) (any, error) {
	switch kind {
	case format.KindInt8:
		return render[int8](a, payload)
	case format.KindUint8:
		return render[uint8](a, payload)
	case format.KindInt16:
		return render[int16](a, payload)
	case format.KindUint16:
		return render[uint16](a, payload)
	case format.KindInt32:
		return render[int32](a, payload)
	case format.KindUint32:
		return render[uint32](a, payload)
	case format.KindInt64:
		return render[int64](a, payload)
	case format.KindUint64:
		return render[uint64](a, payload)
	case format.KindFloat32:
		return render[float32](a, payload)
	case format.KindFloat64:
		return render[float64](a, payload)
	case format.KindComplex64:
		return render[complex64](a, payload)
	case format.KindComplex128:
		return render[complex128](a, payload)
	case format.KindBool:
		return render[bool](a, payload)
	case format.KindChar:
		c, err := Read[uint8](a, payload)
		if err != nil {
			return nil, err
		}

		return string(rune(c)), nil
	case format.KindExtended:
		f, err := a.Extended(payload)
		if err != nil {
			return nil, err
		}

		return f, nil
	case format.KindString:
		return a.String(payload), nil
	case format.KindBytes, format.KindBuffer:
		return a.Bytes(payload), nil
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnknownKind, kind)
	}
}

// Render converts payload using the native byte order. See Accessor.Render.
func Render(kind format.Kind, payload []byte) (any, error) {
	return nativeAccessor.Render(kind, payload)
}

func render[T Scalar](a Accessor, payload []byte) (any, error) {
	v, err := Read[T](a, payload)
	if err != nil {
		return nil, err
	}

	return v, nil
}
