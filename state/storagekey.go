package state

import "github.com/starknet-syscalls/syscallhost/felt"

// StorageKey is the 32-byte big-endian encoding of a storage slot key,
// the unit the transactional cache and the state-reader contract key on.
type StorageKey [32]byte

// KeyFromFelt derives a storage key from a felt.
func KeyFromFelt(f felt.Felt) StorageKey {
	return StorageKey(f.Bytes32())
}

// storageCell identifies a (contract address, key) pair in the cache.
type storageCell struct {
	address felt.Address
	key     StorageKey
}
