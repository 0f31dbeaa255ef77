// Package collision detects hunks written twice into the same buffer.
package collision

import (
	"fmt"

	"github.com/arloliu/brs/errs"
)

const noIndex int32 = -1

// Tracker records the hunks of one buffer.
//
// A plain name may appear once; an array name may appear once per index. Using a name
// both as a plain value and as an array is a collision too, since a consumer binds it
// to either a scalar or a slice, not both.
type Tracker struct {
	plain   map[string]struct{}
	indexed map[string]map[int32]struct{}
	count   int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		plain:   make(map[string]struct{}),
		indexed: make(map[string]map[int32]struct{}),
	}
}

// Check reports whether adding the hunk would collide, without recording it.
func (t *Tracker) Check(name string, index int32) error {
	if _, ok := t.plain[name]; ok {
		return fmt.Errorf("%w: %.64q already written", errs.ErrDuplicateHunk, name)
	}

	elems, isArray := t.indexed[name]
	if index == noIndex {
		if isArray {
			return fmt.Errorf("%w: %.64q already written as an array", errs.ErrDuplicateHunk, name)
		}

		return nil
	}

	if _, ok := elems[index]; ok {
		return fmt.Errorf("%w: %.64q[%d] already written", errs.ErrDuplicateHunk, name, index)
	}

	return nil
}

// Add records a hunk. Callers run Check first.
func (t *Tracker) Add(name string, index int32) {
	t.count++
	if index == noIndex {
		t.plain[name] = struct{}{}
		return
	}

	elems, ok := t.indexed[name]
	if !ok {
		elems = make(map[int32]struct{})
		t.indexed[name] = elems
	}
	elems[index] = struct{}{}
}

// Count returns the number of recorded hunks.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears the tracker for the next buffer.
func (t *Tracker) Reset() {
	clear(t.plain)
	clear(t.indexed)
	t.count = 0
}
