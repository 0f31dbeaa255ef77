package brs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/codec"
	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

type color struct {
	Red, Green, Blue uint8
	Name             string
}

func (c *color) MarshalBRS(e *codec.Encoder) error {
	for _, f := range []struct {
		name string
		v    uint8
	}{{"red", c.Red}, {"green", c.Green}, {"blue", c.Blue}} {
		if err := codec.Add(e, f.name, f.v); err != nil {
			return err
		}
	}

	return e.AddString("name", c.Name)
}

func (c *color) BindBRS(r *codec.Router) {
	codec.Bind(r, "red", &c.Red)
	codec.Bind(r, "green", &c.Green)
	codec.Bind(r, "blue", &c.Blue)
	r.String("name", &c.Name)
}

func TestMarshalUnmarshal(t *testing.T) {
	in := color{Red: 255, Green: 165, Name: "orange"}

	buf, err := Marshal(&in)
	require.NoError(t, err)

	var out color
	require.NoError(t, Unmarshal(buf, &out))
	require.Equal(t, in, out)
}

func TestNewEncoder(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.Equal(t, []byte{'B', 'R', 'S', Version}, enc.Bytes())

	sub, err := NewSubEncoder()
	require.NoError(t, err)
	require.Zero(t, sub.Len())
	require.NoError(t, sub.AddString("k", "v"))
	require.NoError(t, enc.AddBuffer("child", sub))

	var top, nested codec.Collector
	require.NoError(t, Decode(enc.Bytes(), &top))
	require.Len(t, top.Hunks, 1)
	require.NoError(t, DecodeSub(top.Hunks[0].Payload, &nested))
	require.Equal(t, "k", nested.Hunks[0].Name)
}

func TestNewDecoder(t *testing.T) {
	d, err := NewDecoder(codec.WithMaxDepth(0))
	require.NoError(t, err)
	require.Zero(t, d.MaxDepth())

	_, err = NewDecoder(codec.WithDecoderByteOrder(nil))
	require.ErrorIs(t, err, errs.ErrInvalidByteOrder)
}

func TestFingerprint(t *testing.T) {
	c := color{Red: 1, Green: 2, Blue: 3, Name: "rgb"}

	native, err := Marshal(&c)
	require.NoError(t, err)

	other := endian.GetBigEndianEngine()
	if endian.IsNativeBigEndian() {
		other = endian.GetLittleEndianEngine()
	}
	swapped, err := Marshal(&c, codec.WithByteOrder(other))
	require.NoError(t, err)
	require.NotEqual(t, native, swapped)

	sum, err := Fingerprint(native)
	require.NoError(t, err)

	d, err := NewDecoder(codec.WithDecoderByteOrder(other))
	require.NoError(t, err)
	swappedSum, _, err := codec.Fingerprint(d, swapped)
	require.NoError(t, err)
	require.Equal(t, sum, swappedSum)

	_, err = Fingerprint([]byte("nope"))
	require.ErrorIs(t, err, errs.ErrMagicMismatch)
}
