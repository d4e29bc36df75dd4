package state

import (
	"fmt"

	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/starknet-syscalls/syscallhost/felt"
)

var logState = logger.GetOrCreate("syscallhost/state")

// mutation is an undo record for one cache write, letting CachedState
// support snapshot/revert without copying its maps on every call.
type mutation struct {
	undo func(*CachedState)
}

// CachedState is the transactional state cache the syscall handler
// writes through: storage writes, class-hash replacement and contract
// deployment all land here first, falling back to backend (the
// persistent store, out of scope for this repository) only on cache
// miss. Writes are undoable via GetSnapshot/RevertToSnapshot, mirroring
// the snapshot contract the teacher's BlockchainContext exposes.
type CachedState struct {
	backend Reader

	storageUpdates map[storageCell]felt.Felt
	classHashAt    map[felt.Address]felt.ClassHash
	compiledClass  map[felt.ClassHash]ContractClass
	contractClass  map[felt.ClassHash]ContractClass

	journal []mutation
}

// NewCachedState returns a CachedState layered over backend. backend may
// be nil, in which case every miss reads as zero / not-found.
func NewCachedState(backend Reader) *CachedState {
	return &CachedState{
		backend:        backend,
		storageUpdates: make(map[storageCell]felt.Felt),
		classHashAt:    make(map[felt.Address]felt.ClassHash),
		compiledClass:  make(map[felt.ClassHash]ContractClass),
		contractClass:  make(map[felt.ClassHash]ContractClass),
	}
}

// GetSnapshot returns a marker that RevertToSnapshot can later roll back to.
func (s *CachedState) GetSnapshot() int {
	return len(s.journal)
}

// RevertToSnapshot undoes every mutation recorded since snapshot was taken.
func (s *CachedState) RevertToSnapshot(snapshot int) {
	for i := len(s.journal) - 1; i >= snapshot; i-- {
		s.journal[i].undo(s)
	}
	s.journal = s.journal[:snapshot]
}

func (s *CachedState) record(undo func(*CachedState)) {
	s.journal = append(s.journal, mutation{undo: undo})
}

// GetStorageAt reads key under address, falling back to the backend on a cache miss.
func (s *CachedState) GetStorageAt(address felt.Address, key StorageKey) (felt.Felt, error) {
	cell := storageCell{address: address, key: key}
	if v, ok := s.storageUpdates[cell]; ok {
		return v, nil
	}
	if s.backend == nil {
		return felt.Zero, nil
	}
	return s.backend.GetStorageAt(address, key)
}

// SetStorageAt writes key under address into the cache.
func (s *CachedState) SetStorageAt(address felt.Address, key StorageKey, value felt.Felt) {
	cell := storageCell{address: address, key: key}
	old, had := s.storageUpdates[cell]
	s.storageUpdates[cell] = value
	s.record(func(cs *CachedState) {
		if had {
			cs.storageUpdates[cell] = old
		} else {
			delete(cs.storageUpdates, cell)
		}
	})
	logState.Trace("storage write", "address", address.String(), "key", fmt.Sprintf("%x", key), "value", value.String())
}

// GetClassHashAt returns the class installed at address, falling back to the backend.
func (s *CachedState) GetClassHashAt(address felt.Address) (felt.ClassHash, error) {
	if h, ok := s.classHashAt[address]; ok {
		return h, nil
	}
	if s.backend == nil {
		return felt.ClassHash{}, nil
	}
	return s.backend.GetClassHashAt(address)
}

// SetClassHashAt replaces the class hash bound to address (replace_class, §4.6).
func (s *CachedState) SetClassHashAt(address felt.Address, classHash felt.ClassHash) error {
	old, had := s.classHashAt[address]
	s.classHashAt[address] = classHash
	s.record(func(cs *CachedState) {
		if had {
			cs.classHashAt[address] = old
		} else {
			delete(cs.classHashAt, address)
		}
	})
	return nil
}

// DeployContract installs classHash at address, failing if the address
// already carries a class (ErrAddressUnavailable), as consumed by deploy (§4.8 step 3).
func (s *CachedState) DeployContract(address felt.Address, classHash felt.ClassHash) error {
	if existing, err := s.GetClassHashAt(address); err == nil && !existing.IsZero() {
		return fmt.Errorf("%w: %s", ErrAddressUnavailable, address.String())
	}
	return s.SetClassHashAt(address, classHash)
}

// GetContractClass returns the compiled class registered under classHash.
func (s *CachedState) GetContractClass(classHash felt.ClassHash) (ContractClass, error) {
	if c, ok := s.contractClass[classHash]; ok {
		return c, nil
	}
	if c, ok := s.compiledClass[classHash]; ok {
		return c, nil
	}
	if s.backend != nil {
		return s.backend.GetContractClass(classHash)
	}
	return ContractClass{}, fmt.Errorf("%w: %x", ErrClassNotFound, classHash)
}

// SetCompiledClass registers a Cairo-1-style compiled (CASM) class.
func (s *CachedState) SetCompiledClass(classHash felt.ClassHash, class ContractClass) error {
	old, had := s.compiledClass[classHash]
	s.compiledClass[classHash] = class
	s.record(func(cs *CachedState) {
		if had {
			cs.compiledClass[classHash] = old
		} else {
			delete(cs.compiledClass, classHash)
		}
	})
	return nil
}

// SetContractClass registers a deprecated (Cairo-0-style) contract class.
func (s *CachedState) SetContractClass(classHash felt.ClassHash, class ContractClass) error {
	old, had := s.contractClass[classHash]
	s.contractClass[classHash] = class
	s.record(func(cs *CachedState) {
		if had {
			cs.contractClass[classHash] = old
		} else {
			delete(cs.contractClass, classHash)
		}
	})
	return nil
}

var _ ReaderWriter = (*CachedState)(nil)
