package codec

import (
	"math/big"

	"github.com/arloliu/brs/endian"
)

// Accessor converts hunk payloads into Go values using a fixed byte order.
//
// Fixed-width conversions fail with ErrSizeMismatch unless the payload length equals
// the size of the requested type exactly. Strings and byte slices accept any length.
//
// The package level To* functions use the native byte order, which is what every
// buffer produced on the same host uses. An Accessor is only needed to read buffers
// written with an explicit byte order.
type Accessor struct {
	engine endian.EndianEngine
}

var nativeAccessor = Accessor{engine: endian.GetNativeEngine()}

// NewAccessor creates an Accessor for the given byte order. A nil engine selects the native order.
func NewAccessor(engine endian.EndianEngine) Accessor {
	if engine == nil {
		engine = endian.GetNativeEngine()
	}

	return Accessor{engine: engine}
}

// Engine returns the byte order used by the accessor.
func (a Accessor) Engine() endian.EndianEngine {
	if a.engine == nil {
		return endian.GetNativeEngine()
	}

	return a.engine
}

// Read converts payload into a scalar of type T.
func Read[T Scalar](a Accessor, payload []byte) (T, error) {
	return decodeScalar[T](payload, a.Engine())
}

// String returns the payload as a string. Any length is accepted.
func (a Accessor) String(payload []byte) string {
	return string(payload)
}

// Bytes returns a copy of the payload that stays valid after the handler returns.
func (a Accessor) Bytes(payload []byte) []byte {
	if payload == nil {
		return nil
	}

	out := make([]byte, len(payload))
	copy(out, payload)

	return out
}

// Extended decodes a 16-byte x87 extended precision payload.
func (a Accessor) Extended(payload []byte) (*big.Float, error) {
	return decodeExtended(payload, a.Engine())
}

// To converts payload into a scalar of type T using the native byte order.
func To[T Scalar](payload []byte) (T, error) {
	return decodeScalar[T](payload, nativeAccessor.engine)
}

// ToInt8 converts a 1-byte payload into an int8.
func ToInt8(payload []byte) (int8, error) { return To[int8](payload) }

// ToUint8 converts a 1-byte payload into a uint8.
func ToUint8(payload []byte) (uint8, error) { return To[uint8](payload) }

// ToInt16 converts a 2-byte payload into an int16.
func ToInt16(payload []byte) (int16, error) { return To[int16](payload) }

// ToUint16 converts a 2-byte payload into a uint16.
func ToUint16(payload []byte) (uint16, error) { return To[uint16](payload) }

// ToInt32 converts a 4-byte payload into an int32.
func ToInt32(payload []byte) (int32, error) { return To[int32](payload) }

// ToUint32 converts a 4-byte payload into a uint32.
func ToUint32(payload []byte) (uint32, error) { return To[uint32](payload) }

// ToInt64 converts an 8-byte payload into an int64.
func ToInt64(payload []byte) (int64, error) { return To[int64](payload) }

// ToUint64 converts an 8-byte payload into a uint64.
func ToUint64(payload []byte) (uint64, error) { return To[uint64](payload) }

// ToFloat32 converts a 4-byte payload into a float32.
func ToFloat32(payload []byte) (float32, error) { return To[float32](payload) }

// ToFloat64 converts an 8-byte payload into a float64.
func ToFloat64(payload []byte) (float64, error) { return To[float64](payload) }

// ToComplex64 converts an 8-byte payload into a complex64.
func ToComplex64(payload []byte) (complex64, error) { return To[complex64](payload) }

// ToComplex128 converts a 16-byte payload into a complex128.
func ToComplex128(payload []byte) (complex128, error) { return To[complex128](payload) }

// ToBool converts a 1-byte payload into a bool. Any non-zero byte is true.
func ToBool(payload []byte) (bool, error) { return To[bool](payload) }

// ToChar converts a 1-byte payload into a single character.
func ToChar(payload []byte) (byte, error) { return To[uint8](payload) }

// ToString converts a payload of any length into a string.
func ToString(payload []byte) string { return nativeAccessor.String(payload) }

// ToBytes returns a copy of a payload of any length.
func ToBytes(payload []byte) []byte { return nativeAccessor.Bytes(payload) }

// ToExtended converts a 16-byte x87 extended precision payload into a big.Float.
func ToExtended(payload []byte) (*big.Float, error) { return nativeAccessor.Extended(payload) }
