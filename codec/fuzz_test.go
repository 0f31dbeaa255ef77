package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arloliu/brs/errs"
)

func FuzzDecode(f *testing.F) {
	f.Add(orangeLE)
	f.Add([]byte{'B', 'R', 'S', 1})
	f.Add([]byte{'B', 'R', 'S', 1, 0xFF, 0xFF, 0xFF, 0xFF})
	f.Add([]byte{'B', 'R', 'S', 1, 0xFF, 0xFF, 0xFF, 0xFF, 1, 0, 0, 0, 'a', 0, 0, 0, 0})
	f.Add([]byte{'B', 'R', 'S', 1, 0xFF, 0xFF, 0xFF, 0xFF, 1, 0, 0, 0, 'a', 0xFB, 0xFF, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		var c Collector
		err := Decode(data, true, &c)
		if err != nil {
			if !errors.Is(err, errs.ErrTruncatedBuffer) && !errors.Is(err, errs.ErrMagicMismatch) {
				t.Fatalf("unexpected error class: %v", err)
			}

			return
		}

		// re-encoding the decoded hunks yields a buffer decoding to the same hunks
		out := AppendMagic(nil)
		for _, h := range c.Hunks {
			out, err = AppendValue(out, h.Name, h.Payload, h.Index)
			if err != nil {
				t.Fatalf("re-encode %q: %v", h.Name, err)
			}
		}

		var again Collector
		if err := Decode(out, true, &again); err != nil {
			t.Fatalf("decode re-encoded buffer: %v", err)
		}
		if diff := cmp.Diff(c.Hunks, again.Hunks); diff != "" {
			t.Fatalf("hunks differ after re-encoding (-first +second):\n%s", diff)
		}
	})
}
