package fake

import (
	"testing"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
	"github.com/stretchr/testify/require"
)

func TestWriteFeltRangeRoundTrip(t *testing.T) {
	t.Parallel()

	m := New()
	start := m.AddSegment()
	data := []felt.Felt{felt.FromUint64(1), felt.FromUint64(2), felt.FromUint64(3)}

	end, err := m.WriteFeltRange(start, data)
	require.NoError(t, err)
	require.Equal(t, start.Add(uint64(len(data))), end)

	got, err := m.ReadFeltRange(start, end)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, v := range data {
		require.True(t, v.Equal(got[i]))
	}
}

func TestReadUnsetCellFails(t *testing.T) {
	t.Parallel()

	m := New()
	seg := m.AddSegment()
	_, err := m.ReadFelt(seg)
	require.ErrorIs(t, err, vmmem.ErrNoSuchValue)
}

func TestInconsistentWriteFails(t *testing.T) {
	t.Parallel()

	m := New()
	seg := m.AddSegment()
	require.NoError(t, m.WriteFelt(seg, felt.FromUint64(1)))
	err := m.WriteFelt(seg, felt.FromUint64(2))
	require.ErrorIs(t, err, vmmem.ErrInconsistentWrite)

	// Writing the identical value again is idempotent.
	require.NoError(t, m.WriteFelt(seg, felt.FromUint64(1)))
}

func TestSegmentUsedSize(t *testing.T) {
	t.Parallel()

	m := New()
	seg := m.AddSegment()
	_, err := m.WriteFeltRange(seg, []felt.Felt{felt.FromUint64(7), felt.FromUint64(8)})
	require.NoError(t, err)

	used, ok := m.SegmentUsedSize(seg.Segment)
	require.True(t, ok)
	require.Equal(t, uint64(2), used)
}

func TestRelocatableRoundTrip(t *testing.T) {
	t.Parallel()

	m := New()
	outer := m.AddSegment()
	inner := m.AddSegment()
	require.NoError(t, m.WriteRelocatable(outer, inner))

	got, err := m.ReadRelocatable(outer)
	require.NoError(t, err)
	require.Equal(t, inner, got)
}
