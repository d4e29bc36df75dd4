// Package vmmem describes the Cairo VM memory collaborator the syscall
// handler traps into: a segmented, write-once address space addressed by
// relocatable (segment, offset) pairs. The Cairo VM itself is out of
// scope for this repository (see spec §1); Memory is the seam the
// dispatcher is built against, with an in-memory fake under vmmem/fake
// good enough to drive it end to end in tests and the CLI harness.
package vmmem

import "github.com/starknet-syscalls/syscallhost/felt"

// Relocatable identifies a VM memory cell: a segment index plus an
// offset within it. It is not a machine pointer and carries no meaning
// outside of a particular Memory instance.
type Relocatable struct {
	Segment int64
	Offset  uint64
}

// Add returns the relocatable advanced by n cells.
func (r Relocatable) Add(n uint64) Relocatable {
	return Relocatable{Segment: r.Segment, Offset: r.Offset + n}
}

// Sub returns the number of cells between other and r (r - other),
// assuming both lie in the same segment.
func (r Relocatable) Sub(other Relocatable) uint64 {
	return r.Offset - other.Offset
}

// Memory is the VM memory collaborator contract. Every read surfaces
// ErrNoSuchValue when the cell was never written, which the dispatcher
// and syscall implementations turn into protocol errors as appropriate.
type Memory interface {
	// ReadFelt reads the felt at addr.
	ReadFelt(addr Relocatable) (felt.Felt, error)
	// WriteFelt writes a felt at addr. Writing twice to the same cell
	// with the same value is permitted (write-once-per-value semantics);
	// writing a different value is an error, matching Cairo memory.
	WriteFelt(addr Relocatable, value felt.Felt) error
	// ReadRelocatable reads a relocatable pointer at addr.
	ReadRelocatable(addr Relocatable) (Relocatable, error)
	// WriteRelocatable writes a relocatable pointer at addr.
	WriteRelocatable(addr Relocatable, value Relocatable) error
	// AddSegment allocates a new, empty segment and returns a pointer to its start.
	AddSegment() Relocatable
	// WriteFeltRange writes data starting at start, returning the address just past the last cell written.
	WriteFeltRange(start Relocatable, data []felt.Felt) (Relocatable, error)
	// ReadFeltRange reads the felts in [start, end).
	ReadFeltRange(start, end Relocatable) ([]felt.Felt, error)
	// SegmentUsedSize returns how many cells of a segment have been written, or false if the segment does not exist.
	SegmentUsedSize(segment int64) (uint64, bool)
	// MarkRangeAccessed records [start, start+size) as having been validated by the post-run checker.
	MarkRangeAccessed(start Relocatable, size uint64) error
}
