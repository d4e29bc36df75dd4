package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-syscalls/syscallhost/felt"
)

func TestContractStorageStateRecordsReadsAndAccessedKeys(t *testing.T) {
	t.Parallel()

	cs := NewCachedState(nil)
	addr := felt.AddressFromFelt(felt.FromUint64(1))
	view := NewContractStorageState(cs, addr)

	k1 := KeyFromFelt(felt.FromUint64(1))
	k2 := KeyFromFelt(felt.FromUint64(2))

	view.Write(k1, felt.FromUint64(10))
	_, err := view.Read(k1)
	require.NoError(t, err)
	_, err = view.Read(k2)
	require.NoError(t, err)
	_, err = view.Read(k1)
	require.NoError(t, err)

	require.Len(t, view.ReadValues, 3, "duplicate reads of the same key are preserved in order")
	require.Len(t, view.AccessedKeys, 2)
}

func TestMergeChildFoldsReadValuesAndAccessedKeys(t *testing.T) {
	t.Parallel()

	cs := NewCachedState(nil)
	addr := felt.AddressFromFelt(felt.FromUint64(1))
	parent := NewContractStorageState(cs, addr)
	child := NewContractStorageState(cs, addr)

	k := KeyFromFelt(felt.FromUint64(5))
	_, err := child.Read(k)
	require.NoError(t, err)

	parent.MergeChild(child.ReadValues, child.AccessedKeys)
	require.Len(t, parent.ReadValues, 1)
	require.Contains(t, parent.AccessedKeys, k)
}
