package codec

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/errs"
)

func TestMarshalUnmarshal_Shape(t *testing.T) {
	in := shape{
		Name:     "triangle",
		Origin:   point{X: 1, Y: -1, Label: "o"},
		Vertices: []point{{X: 0, Y: 0, Label: "a"}, {X: 1, Y: 0, Label: "b"}, {X: 0, Y: 1, Label: "c"}},
		Weights:  []float32{0.25, 0.5, 0.25},
		Scale:    new(big.Float).SetPrec(extendedPrec).SetFloat64(1.5),
	}

	buf, err := Marshal(&in)
	require.NoError(t, err)

	var out shape
	require.NoError(t, Unmarshal(buf, &out))

	require.Zero(t, in.Scale.Cmp(out.Scale))
	in.Scale, out.Scale = nil, nil
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("unmarshaled shape mismatch (-want +got):\n%s", diff)
	}
}

func TestRouter_OutOfOrderElements(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	for _, i := range []int32{2, 0, 1} {
		require.NoError(t, AddAt(enc, "v", i, int64(i*10)))
		require.NoError(t, enc.AddStringAt("s", i, string(rune('a'+i))))
	}
	require.NoError(t, Add(enc, "tail", int64(99)))

	var v []int64
	var s []string
	r := NewRouter(nil)
	BindSlice(r, "v", &v)
	BindSlice(r, "tail", &v)
	r.Strings("s", &s)

	require.NoError(t, r.Decode(enc.Bytes()))
	require.Equal(t, []int64{0, 10, 20, 99}, v)
	require.Equal(t, []string{"a", "b", "c"}, s)
}

func TestRouter_UnknownNamesIgnored(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, Add(enc, "known", uint32(5)))
	require.NoError(t, enc.AddString("added.in.v2", "ignored"))

	var known uint32
	r := NewRouter(nil)
	Bind(r, "known", &known)

	require.False(t, r.HandleHunk("nobody", nil, NoIndex))
	require.NoError(t, r.Decode(enc.Bytes()))
	require.Equal(t, uint32(5), known)
}

func TestRouter_FieldErrorsCollected(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, Add(enc, "wide", int64(1)))
	require.NoError(t, enc.AddString("label", "kept"))
	require.NoError(t, AddAt(enc, "far", MaxSliceIndex, int8(1)))

	var narrow int32
	var label string
	var far []int8
	r := NewRouter(nil)
	Bind(r, "wide", &narrow)
	r.String("label", &label)
	BindSlice(r, "far", &far)

	err = r.Decode(enc.Bytes())
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
	require.ErrorIs(t, err, errs.ErrInvalidIndex)
	require.Equal(t, "kept", label, "a bad field must not stop decoding")
	require.Empty(t, far)

	require.NoError(t, r.Decode(AppendMagic(nil)), "errors of a previous decode are discarded")
}

func TestRouter_NestedDepthLimit(t *testing.T) {
	buf := nestedChain(t, 3) // leaf at depth 4

	run := func(maxDepth int) (int32, int, error) {
		d, err := NewDecoder(WithMaxDepth(maxDepth))
		require.NoError(t, err)

		var leaf int32
		var leafDepth int
		var bind func(sub *Router)
		bind = func(sub *Router) {
			sub.Nested("child", bind)
			sub.Handle("leaf", func(payload []byte, _ int32) error {
				leafDepth = sub.Depth()
				v, err := ToInt32(payload)
				leaf = v

				return err
			})
		}

		r := NewRouter(d)
		bind(r)

		return leaf, leafDepth, r.Decode(buf)
	}

	leaf, depth, err := run(4)
	require.NoError(t, err)
	require.Equal(t, int32(7), leaf)
	require.Equal(t, 4, depth)

	leaf, _, err = run(3)
	require.ErrorIs(t, err, errs.ErrDepthExceeded)
	require.Zero(t, leaf)
}

func TestRouter_TruncatedNested(t *testing.T) {
	sub, err := NewSubEncoder()
	require.NoError(t, err)
	require.NoError(t, Add(sub, "x", 1.0))

	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.AddString("before", "seen"))
	require.NoError(t, enc.AddValue("origin", sub.Bytes()[:sub.Len()-1]))

	var before string
	var p point
	r := NewRouter(nil)
	r.String("before", &before)
	r.Object("origin", &p)

	err = r.Decode(enc.Bytes())
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
	require.Equal(t, "seen", before)
}

func TestRouter_Bytes(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.AddBytes("blob", []byte{0, 1, 2}))

	var blob []byte
	r := NewRouter(nil)
	r.Bytes("blob", &blob)
	require.NoError(t, r.Decode(enc.Bytes()))
	require.Equal(t, []byte{0, 1, 2}, blob)
}
