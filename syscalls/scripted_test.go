package syscalls

import (
	"fmt"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// scriptedCall is one syscall a scriptedRunner issues: its name (encoded
// to a selector) and a writer for its fixed-size argument block.
type scriptedCall struct {
	name      string
	writeArgs func(mem vmmem.Memory, argsPtr vmmem.Relocatable) error
}

// scriptedRunner is the fake ContractRunner used throughout this
// package's tests: instead of stepping real Cairo bytecode, it issues a
// fixed list of syscalls against the handler it is given, in order, and
// then halts with fixed retdata — standing in for a contract, the same
// role the teacher's mock/contracts package plays for arwen's own host
// tests.
type scriptedRunner struct {
	calls   []scriptedCall
	retdata []felt.Felt
}

func (r scriptedRunner) Run(h *Handler) (vmmem.Relocatable, []felt.Felt, error) {
	ptr := h.SyscallPtr()
	for _, c := range r.calls {
		selector := SelectorForName(c.name)
		if err := h.Memory.WriteFelt(ptr, selector); err != nil {
			return vmmem.Relocatable{}, nil, fmt.Errorf("scripted runner: writing selector: %w", err)
		}
		if err := h.Memory.WriteFelt(ptr.Add(1), feltFromUint64(h.Meter.Remaining())); err != nil {
			return vmmem.Relocatable{}, nil, fmt.Errorf("scripted runner: writing gas header: %w", err)
		}
		if err := c.writeArgs(h.Memory, ptr.Add(2)); err != nil {
			return vmmem.Relocatable{}, nil, fmt.Errorf("scripted runner: writing args for %s: %w", c.name, err)
		}

		next, err := h.Dispatch(ptr)
		if err != nil {
			return vmmem.Relocatable{}, nil, err
		}
		ptr = next
	}
	return ptr, r.retdata, nil
}
