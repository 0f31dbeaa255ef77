package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/errs"
)

func TestKind_String(t *testing.T) {
	require.Equal(t, "int8", KindInt8.String())
	require.Equal(t, "extended", KindExtended.String())
	require.Equal(t, "buffer", KindBuffer.String())
	require.Equal(t, "Unknown", KindInvalid.String())
	require.Equal(t, "Unknown", Kind(0xFE).String())
}

func TestKind_Size(t *testing.T) {
	tests := []struct {
		kind Kind
		size int
	}{
		{KindInt8, 1},
		{KindChar, 1},
		{KindBool, 1},
		{KindUint16, 2},
		{KindFloat32, 4},
		{KindInt64, 8},
		{KindComplex64, 8},
		{KindExtended, 16},
		{KindComplex128, 16},
		{KindString, -1},
		{KindBytes, -1},
		{KindBuffer, -1},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.size, tt.kind.Size())
			require.Equal(t, tt.size > 0, tt.kind.IsFixed())
		})
	}
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		require.NoError(t, err)
		require.Equal(t, k, got)
	}

	got, err := ParseKind(" Double ")
	require.NoError(t, err)
	require.Equal(t, KindFloat64, got)

	got, err = ParseKind("long double")
	require.NoError(t, err)
	require.Equal(t, KindExtended, got)

	_, err = ParseKind("decimal")
	require.ErrorIs(t, err, errs.ErrUnknownKind)
}

func TestKind_TextMarshaling(t *testing.T) {
	text, err := KindUint32.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "uint32", string(text))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("bytes")))
	require.Equal(t, KindBytes, k)

	_, err = KindInvalid.MarshalText()
	require.ErrorIs(t, err, errs.ErrUnknownKind)
	require.ErrorIs(t, k.UnmarshalText([]byte("nope")), errs.ErrUnknownKind)
}
