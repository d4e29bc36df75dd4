package state

import "github.com/starknet-syscalls/syscallhost/felt"

// ContractStorageState is the per-call transactional view over
// CachedState scoped to one contract address (spec §3): it accumulates
// ReadValues in read order (duplicates preserved) and AccessedKeys as a
// membership set, satisfying invariant I4 (AccessedKeys superset of
// every key read or written).
type ContractStorageState struct {
	State   *CachedState
	Address felt.Address

	ReadValues   []felt.Felt
	AccessedKeys map[StorageKey]struct{}
}

// NewContractStorageState scopes a fresh view onto address.
func NewContractStorageState(cs *CachedState, address felt.Address) *ContractStorageState {
	return &ContractStorageState{
		State:        cs,
		Address:      address,
		AccessedKeys: make(map[StorageKey]struct{}),
	}
}

// Read loads key, recording it in ReadValues and AccessedKeys.
func (c *ContractStorageState) Read(key StorageKey) (felt.Felt, error) {
	value, err := c.State.GetStorageAt(c.Address, key)
	if err != nil {
		return felt.Zero, err
	}
	c.ReadValues = append(c.ReadValues, value)
	c.AccessedKeys[key] = struct{}{}
	return value, nil
}

// Write stores value under key, write-through to the cache, recording
// key in AccessedKeys (write-through semantics, spec §3).
func (c *ContractStorageState) Write(key StorageKey, value felt.Felt) {
	c.State.SetStorageAt(c.Address, key, value)
	c.AccessedKeys[key] = struct{}{}
}

// MergeChild folds a child call's read values and accessed keys into
// this (parent) view — the explicit "merge child sets into parent" step
// of spec §9, run once per returning sub-call.
func (c *ContractStorageState) MergeChild(childReadValues []felt.Felt, childAccessedKeys map[StorageKey]struct{}) {
	c.ReadValues = append(c.ReadValues, childReadValues...)
	for k := range childAccessedKeys {
		c.AccessedKeys[k] = struct{}{}
	}
}
