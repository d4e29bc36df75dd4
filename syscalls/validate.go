package syscalls

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// PostRun validates a completed entry point's run before its CallInfo is
// trusted: the final syscall pointer the runner reported must match the
// pointer this handler's own Dispatch calls advanced to, and every
// segment this handler allocated as a response must still have exactly
// the used size it was allocated with before it is marked validated
// (spec §4.9, invariants I3/P4 — guest code can read a handler-authored
// segment but never forge or extend one).
func (h *Handler) PostRun(finalSyscallPtr vmmem.Relocatable) error {
	if finalSyscallPtr != h.expectedSyscallPtr {
		return fmt.Errorf("%w: got %+v, want %+v", ErrSyscallPtrMismatch, finalSyscallPtr, h.expectedSyscallPtr)
	}

	for _, seg := range h.readOnlySegments {
		size := seg.end.Sub(seg.start)
		used, ok := h.Memory.SegmentUsedSize(seg.start.Segment)
		if !ok || used != seg.start.Offset+size {
			return fmt.Errorf("%w: segment %+v: used size %d, recorded size %d", ErrReadOnlySegmentViolation, seg.start, used, size)
		}
		if err := h.Memory.MarkRangeAccessed(seg.start, size); err != nil {
			return fmt.Errorf("%w: segment %+v: %v", ErrReadOnlySegmentViolation, seg.start, err)
		}
	}
	return nil
}
