package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/brs/errs"
)

// Kind names the Go type a payload is interpreted as.
//
// The wire format carries no type information; a Kind is the out-of-band knowledge
// a consumer applies to a hunk name, for instance in a schema file.
type Kind uint8

const (
	KindInvalid    Kind = 0x00 // KindInvalid is the zero Kind.
	KindInt8       Kind = 0x01 // KindInt8 is a signed 8-bit integer.
	KindUint8      Kind = 0x02 // KindUint8 is an unsigned 8-bit integer.
	KindInt16      Kind = 0x03 // KindInt16 is a signed 16-bit integer.
	KindUint16     Kind = 0x04 // KindUint16 is an unsigned 16-bit integer.
	KindInt32      Kind = 0x05 // KindInt32 is a signed 32-bit integer.
	KindUint32     Kind = 0x06 // KindUint32 is an unsigned 32-bit integer.
	KindInt64      Kind = 0x07 // KindInt64 is a signed 64-bit integer.
	KindUint64     Kind = 0x08 // KindUint64 is an unsigned 64-bit integer.
	KindFloat32    Kind = 0x09 // KindFloat32 is an IEEE-754 single precision float.
	KindFloat64    Kind = 0x0A // KindFloat64 is an IEEE-754 double precision float.
	KindExtended   Kind = 0x0B // KindExtended is an x87 extended precision float in 16 bytes.
	KindComplex64  Kind = 0x0C // KindComplex64 is two float32 values.
	KindComplex128 Kind = 0x0D // KindComplex128 is two float64 values.
	KindBool       Kind = 0x0E // KindBool is a single byte, non-zero meaning true.
	KindChar       Kind = 0x0F // KindChar is a single byte character.
	KindString     Kind = 0x10 // KindString is text of any length.
	KindBytes      Kind = 0x11 // KindBytes is an opaque byte buffer of any length.
	KindBuffer     Kind = 0x12 // KindBuffer is a nested sub-buffer without magic.
)

var kindNames = map[Kind]string{
	KindInt8:       "int8",
	KindUint8:      "uint8",
	KindInt16:      "int16",
	KindUint16:     "uint16",
	KindInt32:      "int32",
	KindUint32:     "uint32",
	KindInt64:      "int64",
	KindUint64:     "uint64",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindExtended:   "extended",
	KindComplex64:  "complex64",
	KindComplex128: "complex128",
	KindBool:       "bool",
	KindChar:       "char",
	KindString:     "string",
	KindBytes:      "bytes",
	KindBuffer:     "buffer",
}

// aliases accepted by ParseKind in addition to the canonical names.
var kindAliases = map[string]Kind{
	"byte":        KindUint8,
	"float":       KindFloat32,
	"double":      KindFloat64,
	"long double": KindExtended,
	"text":        KindString,
	"blob":        KindBytes,
	"object":      KindBuffer,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// Size returns the exact payload size of a fixed-width kind, or -1 for kinds
// accepting any length.
func (k Kind) Size() int {
	switch k {
	case KindInt8, KindUint8, KindBool, KindChar:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64, KindComplex64:
		return 8
	case KindExtended, KindComplex128:
		return 16
	default:
		return -1
	}
}

// IsFixed reports whether k has a fixed payload size.
func (k Kind) IsFixed() bool {
	return k.Size() > 0
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownKind, uint8(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}

// ParseKind converts a kind name such as "int32" or "double" into a Kind.
// Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}

	if k, ok := kindAliases[name]; ok {
		return k, nil
	}

	return KindInvalid, fmt.Errorf("%w: %q", errs.ErrUnknownKind, name)
}
