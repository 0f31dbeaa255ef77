package codec

import (
	"fmt"
	"math/big"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

// ExtendedSize is the payload size of an extended precision value.
//
// The value is the x87 80-bit format padded to 16 bytes, the way amd64 compilers
// store a long double: a 64-bit significand with an explicit integer bit at offset 0,
// followed by the sign bit and the 15-bit biased exponent at offset 8, and six zero bytes.
const ExtendedSize = 16

const (
	extendedPrec     = 64
	extendedBias     = 16383
	extendedExpMask  = 0x7FFF
	extendedSignBit  = 0x8000
	extendedIntegral = uint64(1) << 63
)

// appendExtended appends f as an x87 extended precision value.
//
// f is rounded to a 64-bit significand, half to even. Magnitudes beyond the
// extended range become infinities; subnormal results are truncated toward zero.
// A nil f encodes as +0.
func appendExtended(dst []byte, f *big.Float, engine endian.EndianEngine) []byte {
	var (
		mant uint64
		exp  int
		sign uint16
	)

	if f != nil && f.Signbit() {
		sign = extendedSignBit
	}

	switch {
	case f == nil || f.Sign() == 0:
	case f.IsInf():
		exp = extendedExpMask
		mant = extendedIntegral
	default:
		g := new(big.Float).SetMode(big.ToNearestEven).SetPrec(extendedPrec).Abs(f)

		m := new(big.Float)
		e := g.MantExp(m) // g = m * 2^e, 0.5 <= m < 1
		m.SetMantExp(m, extendedPrec)
		mant, _ = m.Uint64()

		exp = e - 1 + extendedBias
		switch {
		case exp >= extendedExpMask:
			exp = extendedExpMask
			mant = extendedIntegral
		case exp <= 0:
			shift := 1 - exp
			if shift >= extendedPrec {
				mant = 0
			} else {
				mant >>= uint(shift)
			}
			exp = 0
		}
	}

	dst = engine.AppendUint64(dst, mant)
	dst = engine.AppendUint16(dst, sign|uint16(exp)) //nolint:gosec

	return append(dst, 0, 0, 0, 0, 0, 0)
}

// decodeExtended converts a 16-byte x87 extended precision payload into a big.Float
// with a 64-bit precision, which holds every finite value exactly.
func decodeExtended(payload []byte, engine endian.EndianEngine) (*big.Float, error) {
	if len(payload) != ExtendedSize {
		return nil, fmt.Errorf("%w: extended needs %d bytes, payload has %d", errs.ErrSizeMismatch, ExtendedSize, len(payload))
	}

	mant := engine.Uint64(payload[0:8])
	se := engine.Uint16(payload[8:10])
	negative := se&extendedSignBit != 0
	exp := int(se & extendedExpMask)

	f := new(big.Float).SetPrec(extendedPrec)

	switch {
	case exp == extendedExpMask:
		if mant<<1 != 0 {
			return nil, errs.ErrNotANumber
		}
		f.SetInf(negative)

		return f, nil
	case mant == 0:
		if negative {
			f.Neg(f)
		}

		return f, nil
	case exp == 0:
		// subnormals share the exponent of the smallest normal
		exp = 1
	}

	f.SetUint64(mant)
	f.SetMantExp(f, exp-extendedBias-(extendedPrec-1))
	if negative {
		f.Neg(f)
	}

	return f, nil
}
