// Package fake provides an in-memory stand-in for the Cairo VM memory
// collaborator (vmmem.Memory), good enough to drive the syscall
// dispatcher end to end in tests and the CLI harness. It is not a Cairo
// VM: it has no notion of bytecode, relocatable segment base patching,
// or proof-system memory constraints beyond write-once-per-cell.
package fake

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

type cell struct {
	isRelocatable bool
	felt          felt.Felt
	reloc         vmmem.Relocatable
	set           bool
}

// Memory is a segmented, write-once address space.
type Memory struct {
	segments [][]cell
	accessed []map[uint64]bool
}

// New returns an empty Memory with no segments allocated.
func New() *Memory {
	return &Memory{}
}

// AddSegment allocates a new, empty segment and returns a pointer to its start.
func (m *Memory) AddSegment() vmmem.Relocatable {
	idx := int64(len(m.segments))
	m.segments = append(m.segments, nil)
	m.accessed = append(m.accessed, map[uint64]bool{})
	return vmmem.Relocatable{Segment: idx, Offset: 0}
}

func (m *Memory) ensureCapacity(segment int64, offset uint64) error {
	if segment < 0 || int(segment) >= len(m.segments) {
		return fmt.Errorf("%w: segment %d", vmmem.ErrNoSuchSegment, segment)
	}
	seg := m.segments[segment]
	if uint64(len(seg)) <= offset {
		grown := make([]cell, offset+1)
		copy(grown, seg)
		m.segments[segment] = grown
	}
	return nil
}

// WriteFelt writes a felt at addr.
func (m *Memory) WriteFelt(addr vmmem.Relocatable, value felt.Felt) error {
	if err := m.ensureCapacity(addr.Segment, addr.Offset); err != nil {
		return err
	}
	c := &m.segments[addr.Segment][addr.Offset]
	if c.set {
		if c.isRelocatable || !c.felt.Equal(value) {
			return fmt.Errorf("%w at %+v", vmmem.ErrInconsistentWrite, addr)
		}
		return nil
	}
	*c = cell{felt: value, set: true}
	return nil
}

// WriteRelocatable writes a relocatable pointer at addr.
func (m *Memory) WriteRelocatable(addr vmmem.Relocatable, value vmmem.Relocatable) error {
	if err := m.ensureCapacity(addr.Segment, addr.Offset); err != nil {
		return err
	}
	c := &m.segments[addr.Segment][addr.Offset]
	if c.set {
		if !c.isRelocatable || c.reloc != value {
			return fmt.Errorf("%w at %+v", vmmem.ErrInconsistentWrite, addr)
		}
		return nil
	}
	*c = cell{isRelocatable: true, reloc: value, set: true}
	return nil
}

// ReadFelt reads the felt at addr.
func (m *Memory) ReadFelt(addr vmmem.Relocatable) (felt.Felt, error) {
	c, err := m.read(addr)
	if err != nil {
		return felt.Zero, err
	}
	if c.isRelocatable {
		return felt.Zero, fmt.Errorf("%w at %+v", vmmem.ErrNotFelt, addr)
	}
	return c.felt, nil
}

// ReadRelocatable reads a relocatable pointer at addr.
func (m *Memory) ReadRelocatable(addr vmmem.Relocatable) (vmmem.Relocatable, error) {
	c, err := m.read(addr)
	if err != nil {
		return vmmem.Relocatable{}, err
	}
	if !c.isRelocatable {
		return vmmem.Relocatable{}, fmt.Errorf("%w at %+v", vmmem.ErrNotRelocatable, addr)
	}
	return c.reloc, nil
}

func (m *Memory) read(addr vmmem.Relocatable) (cell, error) {
	if addr.Segment < 0 || int(addr.Segment) >= len(m.segments) {
		return cell{}, fmt.Errorf("%w: segment %d", vmmem.ErrNoSuchSegment, addr.Segment)
	}
	seg := m.segments[addr.Segment]
	if addr.Offset >= uint64(len(seg)) || !seg[addr.Offset].set {
		return cell{}, fmt.Errorf("%w at %+v", vmmem.ErrNoSuchValue, addr)
	}
	return seg[addr.Offset], nil
}

// WriteFeltRange writes data starting at start, returning the address
// just past the last cell written.
func (m *Memory) WriteFeltRange(start vmmem.Relocatable, data []felt.Felt) (vmmem.Relocatable, error) {
	cur := start
	for _, v := range data {
		if err := m.WriteFelt(cur, v); err != nil {
			return vmmem.Relocatable{}, err
		}
		cur = cur.Add(1)
	}
	return cur, nil
}

// ReadFeltRange reads the felts in [start, end).
func (m *Memory) ReadFeltRange(start, end vmmem.Relocatable) ([]felt.Felt, error) {
	if end.Segment != start.Segment || end.Offset < start.Offset {
		return nil, fmt.Errorf("%w: malformed range %+v..%+v", vmmem.ErrNotFelt, start, end)
	}
	n := end.Offset - start.Offset
	out := make([]felt.Felt, 0, n)
	cur := start
	for i := uint64(0); i < n; i++ {
		v, err := m.ReadFelt(cur)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		cur = cur.Add(1)
	}
	return out, nil
}

// SegmentUsedSize returns how many cells of a segment have been written.
func (m *Memory) SegmentUsedSize(segment int64) (uint64, bool) {
	if segment < 0 || int(segment) >= len(m.segments) {
		return 0, false
	}
	seg := m.segments[segment]
	used := uint64(0)
	for i := len(seg) - 1; i >= 0; i-- {
		if seg[i].set {
			used = uint64(i) + 1
			break
		}
	}
	return used, true
}

// MarkRangeAccessed records [start, start+size) as having been validated.
func (m *Memory) MarkRangeAccessed(start vmmem.Relocatable, size uint64) error {
	if start.Segment < 0 || int(start.Segment) >= len(m.segments) {
		return fmt.Errorf("%w: segment %d", vmmem.ErrNoSuchSegment, start.Segment)
	}
	acc := m.accessed[start.Segment]
	for i := uint64(0); i < size; i++ {
		acc[start.Offset+i] = true
	}
	return nil
}

var _ vmmem.Memory = (*Memory)(nil)
