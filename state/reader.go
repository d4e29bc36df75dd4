package state

import "github.com/starknet-syscalls/syscallhost/felt"

// ContractClass is the minimal view of a compiled contract class the
// syscall handler needs: whether it carries a constructor. Contract-class
// compilation itself is out of scope for this repository (spec §1); this
// type is the seam real compiled-class data would plug into.
type ContractClass struct {
	ClassHash            felt.ClassHash
	ConstructorSelectors []felt.Felt
}

// HasConstructor reports whether the class declares a constructor entry point.
func (c ContractClass) HasConstructor() bool {
	return len(c.ConstructorSelectors) > 0
}

// Reader is the read half of the state-reader contract of spec §6: the
// backing store beneath the transactional cache, out of scope for this
// repository, is reached only through this seam.
type Reader interface {
	GetContractClass(classHash felt.ClassHash) (ContractClass, error)
	GetStorageAt(address felt.Address, key StorageKey) (felt.Felt, error)
	GetClassHashAt(address felt.Address) (felt.ClassHash, error)
}

// Writer is the write half of the state-reader contract of spec §6.
// Writes land in the transactional cache, never the backing store; the
// caller decides on commit/rollback (out of scope here).
type Writer interface {
	SetClassHashAt(address felt.Address, classHash felt.ClassHash) error
	DeployContract(address felt.Address, classHash felt.ClassHash) error
	SetCompiledClass(classHash felt.ClassHash, class ContractClass) error
	SetContractClass(classHash felt.ClassHash, class ContractClass) error
}

// ReaderWriter is the full state-reader contract.
type ReaderWriter interface {
	Reader
	Writer
}
