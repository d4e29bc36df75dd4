package syscalls

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// cell is one word of a mixed felt/relocatable structure written into a
// fresh segment by allocateStruct — get_execution_info's tx/block/exec
// info structs interleave plain felts with pointers into other segments,
// unlike the uniform felt arrays AllocateSegment serves.
type cell struct {
	relocatable bool
	f           felt.Felt
	r           vmmem.Relocatable
}

func feltCell(f felt.Felt) cell               { return cell{f: f} }
func relocatableCell(r vmmem.Relocatable) cell { return cell{relocatable: true, r: r} }

// allocateStruct writes cells into a fresh read-only segment and returns
// its start.
func (h *Handler) allocateStruct(cells []cell) (vmmem.Relocatable, error) {
	start := h.Memory.AddSegment()
	for i, c := range cells {
		at := start.Add(uint64(i))
		var err error
		if c.relocatable {
			err = h.Memory.WriteRelocatable(at, c.r)
		} else {
			err = h.Memory.WriteFelt(at, c.f)
		}
		if err != nil {
			return vmmem.Relocatable{}, fmt.Errorf("syscalls: writing struct cell %d: %w", i, err)
		}
	}
	end := start.Add(uint64(len(cells)))
	h.readOnlySegments = append(h.readOnlySegments, segmentRange{start: start, end: end})
	return start, nil
}
