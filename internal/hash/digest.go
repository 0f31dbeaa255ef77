package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/brs/endian"
)

// Digest computes an xxHash64 fingerprint over a sequence of decoded hunks.
//
// Each hunk contributes its name length, name, payload length, payload and index,
// so two sequences hash equal only if they hold the same hunks in the same order.
// Lengths and indices are hashed little-endian, making the fingerprint independent
// of the byte order the buffer was written in.
type Digest struct {
	d       *xxhash.Digest
	scratch []byte
	count   int
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{
		d:       xxhash.New(),
		scratch: make([]byte, 0, 8),
	}
}

// Add feeds one hunk into the digest.
func (d *Digest) Add(name string, payload []byte, index int32) {
	engine := endian.GetLittleEndianEngine()

	d.scratch = engine.AppendUint32(d.scratch[:0], uint32(len(name))) //nolint:gosec
	_, _ = d.d.Write(d.scratch)
	_, _ = d.d.WriteString(name)

	d.scratch = engine.AppendUint32(d.scratch[:0], uint32(len(payload))) //nolint:gosec
	_, _ = d.d.Write(d.scratch)
	_, _ = d.d.Write(payload)

	d.scratch = engine.AppendUint32(d.scratch[:0], uint32(index)) //nolint:gosec
	_, _ = d.d.Write(d.scratch)

	d.count++
}

// Sum64 returns the fingerprint of all hunks added so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

// Count returns the number of hunks added so far.
func (d *Digest) Count() int {
	return d.count
}

// Reset clears the digest for reuse.
func (d *Digest) Reset() {
	d.d.Reset()
	d.count = 0
}

// Sum returns the xxHash64 of raw bytes, used to fingerprint whole buffers.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
