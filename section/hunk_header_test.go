package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

func TestHunkHeader_Pack(t *testing.T) {
	tests := []struct {
		name       string
		nameLen    int
		payloadLen int
		word       uint32
	}{
		{"empty", 0, 0, 0x00000000},
		{"orange int8", 6, 1, 0x00000106},
		{"max name", MaxNameLength, 0, 0x000000FF},
		{"max payload", 0, MaxPayloadLength, 0xFFFFFF00},
		{"max name, large payload", MaxNameLength, MaxPayloadLength - 1, 0xFFFFFEFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, err := HunkHeader{NameLen: tt.nameLen, PayloadLen: tt.payloadLen}.Pack()
			require.NoError(t, err)
			require.Equal(t, tt.word, word)

			back := UnpackHunkHeader(word)
			require.Equal(t, tt.nameLen, back.NameLen)
			require.Equal(t, tt.payloadLen, back.PayloadLen)
		})
	}
}

func TestHunkHeader_Pack_Overflow(t *testing.T) {
	tests := []struct {
		name       string
		nameLen    int
		payloadLen int
	}{
		{"name 256", MaxNameLength + 1, 0},
		{"payload 0x1000000", 0, MaxPayloadLength + 1},
		{"negative name", -1, 0},
		{"negative payload", 0, -1},
		{"reserved marker", MaxNameLength, MaxPayloadLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HunkHeader{NameLen: tt.nameLen, PayloadLen: tt.payloadLen}.Pack()
			require.ErrorIs(t, err, errs.ErrOverflow)

			_, err = NewHunkHeader(tt.nameLen, tt.payloadLen)
			require.ErrorIs(t, err, errs.ErrOverflow)
		})
	}
}

func TestHunkHeader_AppendTo(t *testing.T) {
	h, err := NewHunkHeader(6, 1)
	require.NoError(t, err)
	require.Equal(t, 11, h.Size())

	t.Run("little endian", func(t *testing.T) {
		out, err := h.AppendTo([]byte{0xAA}, endian.GetLittleEndianEngine())
		require.NoError(t, err)
		require.Equal(t, []byte{0xAA, 6, 1, 0, 0}, out)
	})

	t.Run("big endian", func(t *testing.T) {
		out, err := h.AppendTo(nil, endian.GetBigEndianEngine())
		require.NoError(t, err)
		require.Equal(t, []byte{0, 0, 1, 6}, out)
	})

	t.Run("overflow leaves dst untouched", func(t *testing.T) {
		dst := []byte{1, 2, 3}
		out, err := HunkHeader{NameLen: 300}.AppendTo(dst, endian.GetNativeEngine())
		require.ErrorIs(t, err, errs.ErrOverflow)
		require.Equal(t, []byte{1, 2, 3}, out)
	})
}

func TestParseHunkWord(t *testing.T) {
	engine := endian.GetNativeEngine()

	word, err := ParseHunkWord(engine.AppendUint32(nil, 0x00002A05), engine)
	require.NoError(t, err)
	require.Equal(t, HunkHeader{NameLen: 5, PayloadLen: 42}, UnpackHunkHeader(word))

	for n := range HunkHeaderSize {
		_, err := ParseHunkWord(make([]byte, n), engine)
		require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
	}
}

func TestIndex_RoundTrip(t *testing.T) {
	engine := endian.GetNativeEngine()

	for _, index := range []int32{0, 1, 7, 1 << 20, 2147483647} {
		data := AppendIndex(nil, index, engine)
		require.Len(t, data, IndexSize)

		got, err := ParseIndex(data, engine)
		require.NoError(t, err)
		require.Equal(t, index, got)
	}

	_, err := ParseIndex([]byte{1, 2, 3}, engine)
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)

	marker := AppendIndexMarker(nil, engine)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, marker)
}

func TestMagic(t *testing.T) {
	buf := AppendMagic(nil)
	require.Equal(t, []byte{'B', 'R', 'S', 1}, buf)
	require.NoError(t, CheckMagic(buf))

	t.Run("short buffer", func(t *testing.T) {
		require.ErrorIs(t, CheckMagic([]byte{'B', 'R', 'S'}), errs.ErrTruncatedBuffer)
		require.ErrorIs(t, CheckMagic(nil), errs.ErrTruncatedBuffer)
	})

	t.Run("wrong tag", func(t *testing.T) {
		require.ErrorIs(t, CheckMagic([]byte{'B', 'R', 'X', 1}), errs.ErrMagicMismatch)
	})

	t.Run("wrong version", func(t *testing.T) {
		require.ErrorIs(t, CheckMagic([]byte{'B', 'R', 'S', 0}), errs.ErrMagicMismatch)
		require.ErrorIs(t, CheckMagic([]byte{'B', 'R', 'S', 2}), errs.ErrMagicMismatch)
	})
}
