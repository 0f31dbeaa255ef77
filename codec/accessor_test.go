package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

func roundTrip[T Scalar](t *testing.T, v T) {
	t.Helper()

	enc, err := NewSubEncoder()
	require.NoError(t, err)
	require.NoError(t, Add(enc, "v", v))

	var got T
	r := NewRouter(nil)
	Bind(r, "v", &got)
	require.NoError(t, r.decodeSub(enc.Bytes()))
	require.Equal(t, v, got)
}

func TestScalarRoundTrip(t *testing.T) {
	roundTrip(t, int8(math.MinInt8))
	roundTrip(t, uint8(math.MaxUint8))
	roundTrip(t, int16(-12345))
	roundTrip(t, uint16(54321))
	roundTrip(t, int32(math.MinInt32))
	roundTrip(t, uint32(math.MaxUint32))
	roundTrip(t, int64(math.MinInt64))
	roundTrip(t, uint64(math.MaxUint64))
	roundTrip(t, float32(3.25))
	roundTrip(t, math.MaxFloat64)
	roundTrip(t, complex64(complex(1.5, -2)))
	roundTrip(t, complex(math.Pi, math.E))
	roundTrip(t, true)
	roundTrip(t, false)
}

func TestSizeOf(t *testing.T) {
	require.Equal(t, 1, SizeOf[bool]())
	require.Equal(t, 2, SizeOf[int16]())
	require.Equal(t, 4, SizeOf[float32]())
	require.Equal(t, 8, SizeOf[complex64]())
	require.Equal(t, 16, SizeOf[complex128]())
}

func TestAccessors_SizeMismatch(t *testing.T) {
	tests := []struct {
		name string
		size int
		fn   func([]byte) error
	}{
		{"int8", 1, func(p []byte) error { _, err := ToInt8(p); return err }},
		{"uint8", 1, func(p []byte) error { _, err := ToUint8(p); return err }},
		{"char", 1, func(p []byte) error { _, err := ToChar(p); return err }},
		{"bool", 1, func(p []byte) error { _, err := ToBool(p); return err }},
		{"int16", 2, func(p []byte) error { _, err := ToInt16(p); return err }},
		{"uint16", 2, func(p []byte) error { _, err := ToUint16(p); return err }},
		{"int32", 4, func(p []byte) error { _, err := ToInt32(p); return err }},
		{"uint32", 4, func(p []byte) error { _, err := ToUint32(p); return err }},
		{"float32", 4, func(p []byte) error { _, err := ToFloat32(p); return err }},
		{"int64", 8, func(p []byte) error { _, err := ToInt64(p); return err }},
		{"uint64", 8, func(p []byte) error { _, err := ToUint64(p); return err }},
		{"float64", 8, func(p []byte) error { _, err := ToFloat64(p); return err }},
		{"complex64", 8, func(p []byte) error { _, err := ToComplex64(p); return err }},
		{"complex128", 16, func(p []byte) error { _, err := ToComplex128(p); return err }},
		{"extended", 16, func(p []byte) error { _, err := ToExtended(p); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.fn(make([]byte, tt.size)))
			require.ErrorIs(t, tt.fn(make([]byte, tt.size-1)), errs.ErrSizeMismatch)
			require.ErrorIs(t, tt.fn(make([]byte, tt.size+1)), errs.ErrSizeMismatch)
			require.ErrorIs(t, tt.fn(nil), errs.ErrSizeMismatch)
		})
	}
}

func TestAccessors_Values(t *testing.T) {
	v, err := ToBool([]byte{0x80})
	require.NoError(t, err)
	require.True(t, v)

	c, err := ToChar([]byte{'!'})
	require.NoError(t, err)
	require.Equal(t, byte('!'), c)

	i8, err := ToInt8([]byte{0xFF})
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)

	require.Equal(t, "orange", ToString([]byte("orange")))
	require.Empty(t, ToString(nil))

	payload := []byte{1, 2, 3}
	cp := ToBytes(payload)
	payload[0] = 9
	require.Equal(t, []byte{1, 2, 3}, cp)
	require.Nil(t, ToBytes(nil))
}

func TestAccessor_ExplicitOrder(t *testing.T) {
	le := NewAccessor(endian.GetLittleEndianEngine())
	be := NewAccessor(endian.GetBigEndianEngine())
	payload := []byte{0x01, 0x02}

	v, err := Read[uint16](le, payload)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), v)

	v, err = Read[uint16](be, payload)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), v)

	require.Equal(t, endian.GetNativeEngine(), NewAccessor(nil).Engine())
	require.Equal(t, endian.GetNativeEngine(), Accessor{}.Engine())
}
