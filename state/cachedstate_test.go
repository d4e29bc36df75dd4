package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-syscalls/syscallhost/felt"
)

func TestStorageWriteThenReadHitsCache(t *testing.T) {
	t.Parallel()

	cs := NewCachedState(nil)
	addr := felt.AddressFromFelt(felt.FromUint64(1))
	key := KeyFromFelt(felt.FromUint64(2))

	cs.SetStorageAt(addr, key, felt.FromUint64(99))
	got, err := cs.GetStorageAt(addr, key)
	require.NoError(t, err)
	require.True(t, got.Equal(felt.FromUint64(99)))
}

func TestGetStorageAtMissDefaultsToZeroWithNoBackend(t *testing.T) {
	t.Parallel()

	cs := NewCachedState(nil)
	addr := felt.AddressFromFelt(felt.FromUint64(1))
	key := KeyFromFelt(felt.FromUint64(2))

	got, err := cs.GetStorageAt(addr, key)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestRevertToSnapshotUndoesStorageWrites(t *testing.T) {
	t.Parallel()

	cs := NewCachedState(nil)
	addr := felt.AddressFromFelt(felt.FromUint64(1))
	key := KeyFromFelt(felt.FromUint64(2))

	cs.SetStorageAt(addr, key, felt.FromUint64(1))
	snap := cs.GetSnapshot()
	cs.SetStorageAt(addr, key, felt.FromUint64(2))

	got, err := cs.GetStorageAt(addr, key)
	require.NoError(t, err)
	require.True(t, got.Equal(felt.FromUint64(2)))

	cs.RevertToSnapshot(snap)
	got, err = cs.GetStorageAt(addr, key)
	require.NoError(t, err)
	require.True(t, got.Equal(felt.FromUint64(1)))
}

func TestDeployContractFailsOnAlreadyUsedAddress(t *testing.T) {
	t.Parallel()

	cs := NewCachedState(nil)
	addr := felt.AddressFromFelt(felt.FromUint64(1))
	var classHash felt.ClassHash
	classHash[0] = 1

	require.NoError(t, cs.DeployContract(addr, classHash))
	err := cs.DeployContract(addr, classHash)
	require.ErrorIs(t, err, ErrAddressUnavailable)
}

func TestGetContractClassMissingReturnsErrClassNotFound(t *testing.T) {
	t.Parallel()

	cs := NewCachedState(nil)
	var classHash felt.ClassHash
	_, err := cs.GetContractClass(classHash)
	require.ErrorIs(t, err, ErrClassNotFound)
}

type stubReader struct {
	storage map[StorageKey]felt.Felt
}

func (s stubReader) GetContractClass(felt.ClassHash) (ContractClass, error) {
	return ContractClass{}, ErrClassNotFound
}
func (s stubReader) GetStorageAt(_ felt.Address, key StorageKey) (felt.Felt, error) {
	return s.storage[key], nil
}
func (s stubReader) GetClassHashAt(felt.Address) (felt.ClassHash, error) {
	return felt.ClassHash{}, nil
}

func TestGetStorageAtFallsBackToBackendOnCacheMiss(t *testing.T) {
	t.Parallel()

	key := KeyFromFelt(felt.FromUint64(3))
	backend := stubReader{storage: map[StorageKey]felt.Felt{key: felt.FromUint64(55)}}
	cs := NewCachedState(backend)
	addr := felt.AddressFromFelt(felt.FromUint64(1))

	got, err := cs.GetStorageAt(addr, key)
	require.NoError(t, err)
	require.True(t, got.Equal(felt.FromUint64(55)))
}
