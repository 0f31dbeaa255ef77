package section

import (
	"fmt"

	"github.com/arloliu/brs/errs"
)

// AppendMagic appends the magic header to dst and returns the extended slice.
func AppendMagic(dst []byte) []byte {
	return append(dst, Magic[:]...)
}

// CheckMagic verifies that data starts with the supported magic header.
//
// Returns:
//   - error: ErrTruncatedBuffer if data is shorter than MagicSize, ErrMagicMismatch if the
//     tag or version differs
func CheckMagic(data []byte) error {
	if len(data) < MagicSize {
		return fmt.Errorf("%w: need %d bytes for magic, have %d", errs.ErrTruncatedBuffer, MagicSize, len(data))
	}

	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] {
		return fmt.Errorf("%w: unknown tag %q", errs.ErrMagicMismatch, data[:3])
	}

	if data[3] != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrMagicMismatch, data[3])
	}

	return nil
}
