package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/errs"
)

func track(t *testing.T, tr *Tracker, name string, index int32) error {
	t.Helper()

	if err := tr.Check(name, index); err != nil {
		return err
	}
	tr.Add(name, index)

	return nil
}

func TestTracker_Plain(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, track(t, tr, "red", noIndex))
	require.NoError(t, track(t, tr, "green", noIndex))
	require.ErrorIs(t, track(t, tr, "red", noIndex), errs.ErrDuplicateHunk)
	require.ErrorIs(t, track(t, tr, "red", 0), errs.ErrDuplicateHunk)
	require.Equal(t, 2, tr.Count())
}

func TestTracker_Indexed(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, track(t, tr, "v", 1))
	require.NoError(t, track(t, tr, "v", 0))
	require.ErrorIs(t, track(t, tr, "v", 1), errs.ErrDuplicateHunk)
	require.ErrorIs(t, track(t, tr, "v", noIndex), errs.ErrDuplicateHunk)
	require.NoError(t, track(t, tr, "w", 1))
	require.Equal(t, 3, tr.Count())
}

func TestTracker_CheckDoesNotRecord(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Check("a", noIndex))
	require.NoError(t, tr.Check("a", noIndex))
	require.Zero(t, tr.Count())
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, track(t, tr, "a", noIndex))
	require.NoError(t, track(t, tr, "b", 3))

	tr.Reset()
	require.Zero(t, tr.Count())
	require.NoError(t, track(t, tr, "a", noIndex))
	require.NoError(t, track(t, tr, "b", 3))
}
