package codec

import "github.com/arloliu/brs/internal/hash"

// Digest is a Handler that fingerprints the hunks it sees with xxHash64.
//
// The fingerprint covers names, payloads and indices in buffer order, so two buffers
// decoding to the same hunk sequence share a fingerprint whatever their byte order.
type Digest struct {
	d *hash.Digest
}

var _ Handler = (*Digest)(nil)

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: hash.NewDigest()}
}

// HandleHunk adds the hunk to the fingerprint.
func (g *Digest) HandleHunk(name string, payload []byte, index int32) bool {
	g.d.Add(name, payload, index)
	return true
}

// Sum64 returns the fingerprint of the hunks seen so far.
func (g *Digest) Sum64() uint64 {
	return g.d.Sum64()
}

// Count returns the number of hunks seen so far.
func (g *Digest) Count() int {
	return g.d.Count()
}

// Reset clears the digest.
func (g *Digest) Reset() {
	g.d.Reset()
}

// Fingerprint decodes data with d and returns the digest of its hunks and their count.
// A nil d uses the default decoder.
func Fingerprint(d *Decoder, data []byte) (uint64, int, error) {
	if d == nil {
		d = defaultDecoder
	}

	g := NewDigest()
	if err := d.Decode(data, g); err != nil {
		return 0, g.Count(), err
	}

	return g.Sum64(), g.Count(), nil
}
